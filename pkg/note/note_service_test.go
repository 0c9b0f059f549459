package note

import (
	"context"
	"errors"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/internal/logging"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

type fakeNoteRepository struct {
	links map[string]*entities.DietitianClient
	notes map[string]*entities.Note
}

func newFakeNoteRepository() *fakeNoteRepository {
	return &fakeNoteRepository{
		links: map[string]*entities.DietitianClient{},
		notes: map[string]*entities.Note{},
	}
}

func (r *fakeNoteRepository) CreateLink(_ context.Context, link *entities.DietitianClient) error {
	r.links[link.ID.String()] = link
	return nil
}

func (r *fakeNoteRepository) GetLinkByID(_ context.Context, id string) (*entities.DietitianClient, error) {
	if l, ok := r.links[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNoteRepository) GetLink(_ context.Context, dietitianID, clientID string) (*entities.DietitianClient, error) {
	for _, l := range r.links {
		if l.DietitianID.String() == dietitianID && l.ClientID.String() == clientID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNoteRepository) GetLinksByDietitian(_ context.Context, dietitianID string) ([]*entities.DietitianClient, error) {
	var out []*entities.DietitianClient
	for _, l := range r.links {
		if l.DietitianID.String() == dietitianID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeNoteRepository) GetLinksByClient(_ context.Context, clientID string) ([]*entities.DietitianClient, error) {
	var out []*entities.DietitianClient
	for _, l := range r.links {
		if l.ClientID.String() == clientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeNoteRepository) DeleteLink(_ context.Context, link *entities.DietitianClient) error {
	for id, n := range r.notes {
		if n.DietitianID == link.DietitianID && n.ClientID == link.ClientID {
			delete(r.notes, id)
		}
	}
	delete(r.links, link.ID.String())
	return nil
}

func (r *fakeNoteRepository) CreateNote(_ context.Context, note *entities.Note) error {
	r.notes[note.ID.String()] = note
	return nil
}

func (r *fakeNoteRepository) GetNoteByID(_ context.Context, id string) (*entities.Note, error) {
	if n, ok := r.notes[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNoteRepository) GetNotes(_ context.Context, dietitianID, clientID string, page, limit int) ([]*entities.Note, int64, error) {
	var out []*entities.Note
	for _, n := range r.notes {
		if n.DietitianID.String() == dietitianID && n.ClientID.String() == clientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNoteRepository) DeleteNote(_ context.Context, id string) error {
	delete(r.notes, id)
	return nil
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

type parties struct {
	dietitian, client, stranger string
}

func newParties() parties {
	return parties{uuid.NewString(), uuid.NewString(), uuid.NewString()}
}

func TestNoteService_Links(t *testing.T) {
	svc := NewNoteService(newFakeNoteRepository(), nil, logging.NewNop())
	ctx := context.Background()
	p := newParties()

	_, err := svc.LinkClient(ctx, domain.LinkClientRequest{ClientID: p.client}, p.client, domain.RoleClient, "")
	assert.ErrorIs(t, err, domain.ErrNotDietitian)

	_, err = svc.LinkClient(ctx, domain.LinkClientRequest{ClientID: p.dietitian}, p.dietitian, domain.RoleDietitian, "")
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	link, err := svc.LinkClient(ctx, domain.LinkClientRequest{ClientID: p.client}, p.dietitian, domain.RoleDietitian, "d@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.client, link.ClientID)

	_, err = svc.LinkClient(ctx, domain.LinkClientRequest{ClientID: p.client}, p.dietitian, domain.RoleDietitian, "")
	assert.ErrorIs(t, err, domain.ErrClientAlreadyLinked)

	links, err := svc.GetLinks(ctx, p.dietitian, domain.RoleDietitian)
	require.NoError(t, err)
	assert.Len(t, links, 1)
	links, err = svc.GetLinks(ctx, p.client, domain.RoleClient)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	assert.ErrorIs(t, svc.UnlinkClient(ctx, link.ID, p.stranger), domain.ErrUnauthorizedLinkAccess)
	require.NoError(t, svc.UnlinkClient(ctx, link.ID, p.client))
	assert.ErrorIs(t, svc.UnlinkClient(ctx, link.ID, p.client), domain.ErrLinkNotFound)
}

func TestNoteService_Thread(t *testing.T) {
	repo := newFakeNoteRepository()
	mailer := &fakeMailer{}
	tl := logging.NewTestLogger()
	svc := NewNoteService(repo, mailer, tl.Logger)
	ctx := context.Background()
	p := newParties()

	link, err := svc.LinkClient(ctx, domain.LinkClientRequest{ClientID: p.client, ClientEmail: "c@example.com"}, p.dietitian, domain.RoleDietitian, "d@example.com")
	require.NoError(t, err)

	note, err := svc.CreateNote(ctx, link.ID, domain.CreateNoteRequest{Body: "more <fiber>"}, p.dietitian)
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "c@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "more &lt;fiber&gt;")

	mailer.err = errors.New("smtp down")
	_, err = svc.CreateNote(ctx, link.ID, domain.CreateNoteRequest{Body: "ok"}, p.client)
	require.NoError(t, err)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "d@example.com", mailer.sent[1].to)
	tl.AssertLogged(t, zapcore.WarnLevel, "note notification failed")

	_, err = svc.CreateNote(ctx, link.ID, domain.CreateNoteRequest{Body: "hi"}, p.stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedLinkAccess)

	notes, count, err := svc.GetNotes(ctx, link.ID, 0, 0, p.client)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Len(t, notes, 2)

	_, _, err = svc.GetNotes(ctx, link.ID, 1, 10, p.stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedLinkAccess)

	assert.ErrorIs(t, svc.DeleteNote(ctx, note.ID, p.client), domain.ErrUnauthorizedNoteAccess)
	require.NoError(t, svc.DeleteNote(ctx, note.ID, p.dietitian))
	assert.ErrorIs(t, svc.DeleteNote(ctx, note.ID, p.dietitian), domain.ErrNoteNotFound)

	require.NoError(t, svc.UnlinkClient(ctx, link.ID, p.dietitian))
	assert.Empty(t, repo.notes)
}
