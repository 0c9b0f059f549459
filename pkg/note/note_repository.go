package note

import (
	"context"
	"nutrilog-backend/entities"

	"gorm.io/gorm"
)

type (
	NoteRepository interface {
		CreateLink(ctx context.Context, link *entities.DietitianClient) error
		GetLinkByID(ctx context.Context, id string) (*entities.DietitianClient, error)
		GetLink(ctx context.Context, dietitianID, clientID string) (*entities.DietitianClient, error)
		GetLinksByDietitian(ctx context.Context, dietitianID string) ([]*entities.DietitianClient, error)
		GetLinksByClient(ctx context.Context, clientID string) ([]*entities.DietitianClient, error)
		DeleteLink(ctx context.Context, link *entities.DietitianClient) error

		CreateNote(ctx context.Context, note *entities.Note) error
		GetNoteByID(ctx context.Context, id string) (*entities.Note, error)
		GetNotes(ctx context.Context, dietitianID, clientID string, page, limit int) ([]*entities.Note, int64, error)
		DeleteNote(ctx context.Context, id string) error
	}

	noteRepository struct {
		db *gorm.DB
	}
)

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) CreateLink(ctx context.Context, link *entities.DietitianClient) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *noteRepository) GetLinkByID(ctx context.Context, id string) (*entities.DietitianClient, error) {
	var link entities.DietitianClient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *noteRepository) GetLink(ctx context.Context, dietitianID, clientID string) (*entities.DietitianClient, error) {
	var link entities.DietitianClient
	err := r.db.WithContext(ctx).
		Where("dietitian_id = ? AND client_id = ?", dietitianID, clientID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *noteRepository) GetLinksByDietitian(ctx context.Context, dietitianID string) ([]*entities.DietitianClient, error) {
	var links []*entities.DietitianClient
	if err := r.db.WithContext(ctx).Where("dietitian_id = ?", dietitianID).Order("created_at asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *noteRepository) GetLinksByClient(ctx context.Context, clientID string) ([]*entities.DietitianClient, error) {
	var links []*entities.DietitianClient
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteLink removes the link and the notes of its thread.
func (r *noteRepository) DeleteLink(ctx context.Context, link *entities.DietitianClient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("dietitian_id = ? AND client_id = ?", link.DietitianID, link.ClientID).
			Delete(&entities.Note{}).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", link.ID).Delete(&entities.DietitianClient{}).Error
	})
}

func (r *noteRepository) CreateNote(ctx context.Context, note *entities.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) GetNoteByID(ctx context.Context, id string) (*entities.Note, error) {
	var note entities.Note
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) GetNotes(ctx context.Context, dietitianID, clientID string, page, limit int) ([]*entities.Note, int64, error) {
	var notes []*entities.Note
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Note{}).
		Where("dietitian_id = ? AND client_id = ?", dietitianID, clientID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&notes).Error; err != nil {
		return nil, 0, err
	}

	return notes, count, nil
}

func (r *noteRepository) DeleteNote(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Note{}).Error
}
