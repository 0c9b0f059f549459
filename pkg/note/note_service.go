package note

import (
	"context"
	"errors"
	"fmt"
	"html"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/internal/utils/mailing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	NoteService interface {
		LinkClient(ctx context.Context, req domain.LinkClientRequest, userID string, role string, email string) (domain.LinkResponse, error)
		UnlinkClient(ctx context.Context, linkID string, userID string) error
		GetLinks(ctx context.Context, userID string, role string) ([]domain.LinkResponse, error)
		CreateNote(ctx context.Context, linkID string, req domain.CreateNoteRequest, userID string) (domain.NoteResponse, error)
		GetNotes(ctx context.Context, linkID string, page, limit int, userID string) ([]domain.NoteResponse, int64, error)
		DeleteNote(ctx context.Context, noteID string, userID string) error
	}

	noteService struct {
		noteRepository NoteRepository
		mailer         mailing.Mailer
		log            *logging.Logger
	}
)

// NewNoteService builds the service. A nil mailer disables notifications.
func NewNoteService(noteRepository NoteRepository, mailer mailing.Mailer, log *logging.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		mailer:         mailer,
		log:            log.Named("note"),
	}
}

func (s *noteService) LinkClient(ctx context.Context, req domain.LinkClientRequest, userID string, role string, email string) (domain.LinkResponse, error) {
	if role != domain.RoleDietitian {
		return domain.LinkResponse{}, domain.ErrNotDietitian
	}

	dietitianUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.LinkResponse{}, domain.ErrParseUUID
	}
	clientUUID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return domain.LinkResponse{}, domain.ErrParseUUID
	}
	if clientUUID == dietitianUUID {
		return domain.LinkResponse{}, domain.ErrUserNotAllowed
	}

	_, err = s.noteRepository.GetLink(ctx, userID, req.ClientID)
	if err == nil {
		return domain.LinkResponse{}, domain.ErrClientAlreadyLinked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.LinkResponse{}, err
	}

	link := &entities.DietitianClient{
		ID:             uuid.New(),
		DietitianID:    dietitianUUID,
		ClientID:       clientUUID,
		DietitianEmail: email,
		ClientEmail:    req.ClientEmail,
	}

	if err := s.noteRepository.CreateLink(ctx, link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.LinkResponse{}, domain.ErrClientAlreadyLinked
		}
		return domain.LinkResponse{}, err
	}

	return toLinkResponse(link), nil
}

// UnlinkClient lets either party end the link. The thread's notes go with it.
func (s *noteService) UnlinkClient(ctx context.Context, linkID string, userID string) error {
	link, err := s.link(ctx, linkID, userID)
	if err != nil {
		return err
	}

	return s.noteRepository.DeleteLink(ctx, link)
}

func (s *noteService) GetLinks(ctx context.Context, userID string, role string) ([]domain.LinkResponse, error) {
	var (
		links []*entities.DietitianClient
		err   error
	)
	if role == domain.RoleDietitian {
		links, err = s.noteRepository.GetLinksByDietitian(ctx, userID)
	} else {
		links, err = s.noteRepository.GetLinksByClient(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]domain.LinkResponse, 0, len(links))
	for _, link := range links {
		res = append(res, toLinkResponse(link))
	}
	return res, nil
}

// CreateNote appends a note to the link's thread and e-mails the other party
// when their address is known. A failed notification is only logged.
func (s *noteService) CreateNote(ctx context.Context, linkID string, req domain.CreateNoteRequest, userID string) (domain.NoteResponse, error) {
	link, err := s.link(ctx, linkID, userID)
	if err != nil {
		return domain.NoteResponse{}, err
	}

	note := &entities.Note{
		ID:          uuid.New(),
		DietitianID: link.DietitianID,
		ClientID:    link.ClientID,
		AuthorID:    uuid.MustParse(userID),
		Body:        req.Body,
	}

	if err := s.noteRepository.CreateNote(ctx, note); err != nil {
		return domain.NoteResponse{}, err
	}

	s.notify(ctx, link, note)
	return toNoteResponse(note), nil
}

func (s *noteService) GetNotes(ctx context.Context, linkID string, page, limit int, userID string) ([]domain.NoteResponse, int64, error) {
	link, err := s.link(ctx, linkID, userID)
	if err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = 20
	}

	notes, count, err := s.noteRepository.GetNotes(ctx, link.DietitianID.String(), link.ClientID.String(), page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, count, nil
}

func (s *noteService) DeleteNote(ctx context.Context, noteID string, userID string) error {
	if _, err := uuid.Parse(noteID); err != nil {
		return domain.ErrParseUUID
	}

	note, err := s.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNoteNotFound
		}
		return err
	}

	if note.AuthorID.String() != userID {
		return domain.ErrUnauthorizedNoteAccess
	}

	return s.noteRepository.DeleteNote(ctx, noteID)
}

// link loads a link that userID is a party of.
func (s *noteService) link(ctx context.Context, linkID string, userID string) (*entities.DietitianClient, error) {
	if _, err := uuid.Parse(linkID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	link, err := s.noteRepository.GetLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, err
	}

	if link.DietitianID.String() != userID && link.ClientID.String() != userID {
		return nil, domain.ErrUnauthorizedLinkAccess
	}

	return link, nil
}

func (s *noteService) notify(ctx context.Context, link *entities.DietitianClient, note *entities.Note) {
	if s.mailer == nil {
		return
	}

	to, from := link.ClientEmail, "your dietitian"
	if note.AuthorID == link.ClientID {
		to, from = link.DietitianEmail, "your client"
	}
	if to == "" {
		return
	}

	body := fmt.Sprintf("<p>You have a new note from %s:</p><blockquote>%s</blockquote>", from, html.EscapeString(note.Body))
	if err := s.mailer.SendMail(to, "New note", body); err != nil {
		s.log.Warn(ctx, "note notification failed", zap.String("note_id", note.ID.String()), zap.Error(err))
	}
}

func toLinkResponse(link *entities.DietitianClient) domain.LinkResponse {
	return domain.LinkResponse{
		ID:          link.ID.String(),
		DietitianID: link.DietitianID.String(),
		ClientID:    link.ClientID.String(),
		CreatedAt:   link.CreatedAt,
	}
}

func toNoteResponse(note *entities.Note) domain.NoteResponse {
	return domain.NoteResponse{
		ID:        note.ID.String(),
		AuthorID:  note.AuthorID.String(),
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
	}
}
