package draft

import (
	"context"
	"encoding/json"
	"errors"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var contextPattern = regexp.MustCompile(`^[A-Za-z0-9_:-]{1,64}$`)

type (
	// DraftService keeps unsaved client-side form state. Drafts are never
	// authoritative: nothing else reads them.
	DraftService interface {
		SaveDraft(ctx context.Context, draftContext string, req domain.SaveDraftRequest, userID string) (domain.DraftResponse, error)
		GetDraft(ctx context.Context, draftContext string, userID string) (domain.DraftResponse, error)
		DeleteDraft(ctx context.Context, draftContext string, userID string) error
	}

	draftService struct {
		store Store
		now   func() time.Time
	}
)

func NewDraftService(store Store) DraftService {
	return &draftService{store: store, now: time.Now}
}

func (s *draftService) key(draftContext string, userID string) (uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	if !contextPattern.MatchString(draftContext) {
		return uuid.Nil, domain.ErrInvalidDraftContext
	}
	return userUUID, nil
}

func (s *draftService) SaveDraft(ctx context.Context, draftContext string, req domain.SaveDraftRequest, userID string) (domain.DraftResponse, error) {
	userUUID, err := s.key(draftContext, userID)
	if err != nil {
		return domain.DraftResponse{}, err
	}
	if !json.Valid(req.Payload) {
		return domain.DraftResponse{}, domain.ErrInvalidDraftPayload
	}

	d := &entities.Draft{
		ID:      uuid.New(),
		UserID:  userUUID,
		Context: draftContext,
		Payload: datatypes.JSON(req.Payload),
	}
	d.UpdatedAt = s.now().UTC()

	if err := s.store.Put(ctx, d); err != nil {
		return domain.DraftResponse{}, err
	}

	return toDraftResponse(d), nil
}

func (s *draftService) GetDraft(ctx context.Context, draftContext string, userID string) (domain.DraftResponse, error) {
	userUUID, err := s.key(draftContext, userID)
	if err != nil {
		return domain.DraftResponse{}, err
	}

	d, err := s.store.Get(ctx, userUUID, draftContext)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.DraftResponse{}, domain.ErrDraftNotFound
		}
		return domain.DraftResponse{}, err
	}

	return toDraftResponse(d), nil
}

func (s *draftService) DeleteDraft(ctx context.Context, draftContext string, userID string) error {
	userUUID, err := s.key(draftContext, userID)
	if err != nil {
		return err
	}

	return s.store.Delete(ctx, userUUID, draftContext)
}

func toDraftResponse(d *entities.Draft) domain.DraftResponse {
	return domain.DraftResponse{
		Context:   d.Context,
		Payload:   json.RawMessage(d.Payload),
		UpdatedAt: d.UpdatedAt,
	}
}
