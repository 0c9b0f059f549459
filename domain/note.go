package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessLinkClient   = "client linked successfully"
	MessageSuccessUnlinkClient = "client unlinked successfully"
	MessageSuccessGetLinks     = "links retrieved successfully"
	MessageSuccessCreateNote   = "note created successfully"
	MessageSuccessGetNotes     = "notes retrieved successfully"
	MessageSuccessDeleteNote   = "note deleted successfully"

	MessageFailedLinkClient   = "failed to link client"
	MessageFailedUnlinkClient = "failed to unlink client"
	MessageFailedGetLinks     = "failed to retrieve links"
	MessageFailedCreateNote   = "failed to create note"
	MessageFailedGetNotes     = "failed to retrieve notes"
	MessageFailedDeleteNote   = "failed to delete note"

	ErrNotDietitian           = errors.New("only dietitians can link clients")
	ErrClientAlreadyLinked    = errors.New("client already linked")
	ErrLinkNotFound           = errors.New("dietitian client link not found")
	ErrUnauthorizedLinkAccess = errors.New("unauthorized access to note thread")
	ErrNoteNotFound           = errors.New("note not found")
	ErrUnauthorizedNoteAccess = errors.New("only the author can delete a note")
)

type (
	LinkClientRequest struct {
		ClientID    string `json:"client_id" validate:"required,uuid"`
		ClientEmail string `json:"client_email" validate:"omitempty,email"`
	}

	LinkResponse struct {
		ID          string    `json:"id"`
		DietitianID string    `json:"dietitian_id"`
		ClientID    string    `json:"client_id"`
		CreatedAt   time.Time `json:"created_at"`
	}

	CreateNoteRequest struct {
		Body string `json:"body" validate:"required,max=5000"`
	}

	NoteResponse struct {
		ID        string    `json:"id"`
		AuthorID  string    `json:"author_id"`
		Body      string    `json:"body"`
		CreatedAt time.Time `json:"created_at"`
	}
)
