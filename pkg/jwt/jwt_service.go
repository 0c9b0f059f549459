package jwt

import (
	"errors"
	"fmt"
	"nutrilog-backend/domain"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const defaultIssuer = "NUTRILOG"

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string, email string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (Claims, error)
	}

	// Claims identifies the acting user of a request.
	Claims struct {
		UserID string
		Role   string
		Email  string
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		Email  string `json:"email,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

func NewJWTService(secretKey string, issuer string) JWTService {
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		ttl:       120 * time.Minute,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string, email string) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		UserID: userID,
		Role:   role,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (Claims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, domain.ErrTokenExpired
		}
		return Claims{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return Claims{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" || claims.Issuer != j.issuer {
		return Claims{}, domain.ErrTokenInvalid
	}

	return Claims{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}, nil
}
