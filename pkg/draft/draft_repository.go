package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nutrilog-backend/entities"
	"nutrilog-backend/internal/utils/storage"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by a Store holding no draft for the key.
var ErrNotFound = errors.New("draft not stored")

type (
	// Store keeps one draft per user and context.
	Store interface {
		Get(ctx context.Context, userID uuid.UUID, draftContext string) (*entities.Draft, error)
		Put(ctx context.Context, draft *entities.Draft) error
		Delete(ctx context.Context, userID uuid.UUID, draftContext string) error
	}

	gormStore struct {
		db *gorm.DB
	}

	s3Store struct {
		s3 storage.AwsS3
	}

	s3Envelope struct {
		Payload   json.RawMessage `json:"payload"`
		UpdatedAt time.Time       `json:"updated_at"`
	}
)

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (r *gormStore) Get(ctx context.Context, userID uuid.UUID, draftContext string) (*entities.Draft, error) {
	var d entities.Draft
	err := r.db.WithContext(ctx).Where("user_id = ? AND context = ?", userID, draftContext).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *gormStore) Put(ctx context.Context, draft *entities.Draft) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "context"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(draft).Error
}

func (r *gormStore) Delete(ctx context.Context, userID uuid.UUID, draftContext string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND context = ?", userID, draftContext).
		Delete(&entities.Draft{}).Error
}

// NewS3Store keeps each draft as one JSON object under drafts/<user>/.
func NewS3Store(s3 storage.AwsS3) Store {
	return &s3Store{s3: s3}
}

func objectKey(userID uuid.UUID, draftContext string) string {
	return fmt.Sprintf("drafts/%s/%s.json", userID, draftContext)
}

func (r *s3Store) Get(ctx context.Context, userID uuid.UUID, draftContext string) (*entities.Draft, error) {
	body, err := r.s3.GetObject(ctx, objectKey(userID, draftContext))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var env s3Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode draft object: %w", err)
	}

	d := &entities.Draft{
		UserID:  userID,
		Context: draftContext,
		Payload: []byte(env.Payload),
	}
	d.UpdatedAt = env.UpdatedAt
	return d, nil
}

func (r *s3Store) Put(ctx context.Context, draft *entities.Draft) error {
	body, err := json.Marshal(s3Envelope{
		Payload:   json.RawMessage(draft.Payload),
		UpdatedAt: draft.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return r.s3.PutObject(ctx, objectKey(draft.UserID, draft.Context), body, "application/json")
}

func (r *s3Store) Delete(ctx context.Context, userID uuid.UUID, draftContext string) error {
	return r.s3.DeleteObject(ctx, objectKey(userID, draftContext))
}
