package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	MessageSuccessSaveDraft   = "draft saved successfully"
	MessageSuccessGetDraft    = "draft retrieved successfully"
	MessageSuccessDeleteDraft = "draft deleted successfully"

	MessageFailedSaveDraft   = "failed to save draft"
	MessageFailedGetDraft    = "failed to retrieve draft"
	MessageFailedDeleteDraft = "failed to delete draft"

	ErrDraftNotFound       = errors.New("draft not found")
	ErrInvalidDraftPayload = errors.New("draft payload must be valid JSON")
	ErrInvalidDraftContext = errors.New("draft context must be 1-64 characters of letters, digits, '-', '_' or ':'")
)

type (
	SaveDraftRequest struct {
		Payload json.RawMessage `json:"payload" validate:"required"`
	}

	DraftResponse struct {
		Context   string          `json:"context"`
		Payload   json.RawMessage `json:"payload"`
		UpdatedAt time.Time       `json:"updated_at"`
	}
)
