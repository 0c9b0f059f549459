package weight

import (
	"context"
	"errors"
	"math"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UnitKg = "kg"
	UnitLb = "lb"

	lbPerKg = 2.20462
)

type (
	WeightService interface {
		LogWeight(ctx context.Context, req domain.LogWeightRequest, userID string) (domain.WeightEntryResponse, error)
		GetWeights(ctx context.Context, from, to string, userID string) (domain.WeightHistoryResponse, error)
		DeleteWeight(ctx context.Context, id string, userID string) error
	}

	weightService struct {
		weightRepository WeightRepository
		now              func() time.Time
	}
)

func NewWeightService(weightRepository WeightRepository) WeightService {
	return &weightService{
		weightRepository: weightRepository,
		now:              time.Now,
	}
}

// ToKg converts a weight in unit to kilograms. An empty unit means kg.
func ToKg(weight float64, unit string) (float64, error) {
	if weight <= 0 {
		return 0, domain.ErrInvalidWeight
	}
	switch unit {
	case "", UnitKg:
		return round(weight, 2), nil
	case UnitLb:
		return round(weight/lbPerKg, 2), nil
	}
	return 0, domain.ErrInvalidWeightUnit
}

func (s *weightService) LogWeight(ctx context.Context, req domain.LogWeightRequest, userID string) (domain.WeightEntryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.WeightEntryResponse{}, domain.ErrParseUUID
	}

	date, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		return domain.WeightEntryResponse{}, domain.ErrInvalidDate
	}

	kg, err := ToKg(req.Weight, req.Unit)
	if err != nil {
		return domain.WeightEntryResponse{}, err
	}

	entry := &entities.WeightEntry{
		ID:       uuid.New(),
		UserID:   userUUID,
		Date:     date,
		WeightKg: kg,
	}

	if err := s.weightRepository.UpsertWeight(ctx, entry); err != nil {
		return domain.WeightEntryResponse{}, err
	}

	// The upsert may have hit an existing row; read back its id.
	stored, err := s.weightRepository.GetWeightByDate(ctx, userID, date)
	if err != nil {
		return domain.WeightEntryResponse{}, err
	}

	return toWeightResponse(stored), nil
}

// GetWeights lists entries between from and to inclusive, defaulting to the
// last 30 days, with the change between the first and last entry.
func (s *weightService) GetWeights(ctx context.Context, from, to string, userID string) (domain.WeightHistoryResponse, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	end := today
	if to != "" {
		d, err := time.Parse(domain.DateLayout, to)
		if err != nil {
			return domain.WeightHistoryResponse{}, domain.ErrInvalidDate
		}
		end = d
	}

	start := end.AddDate(0, 0, -30)
	if from != "" {
		d, err := time.Parse(domain.DateLayout, from)
		if err != nil {
			return domain.WeightHistoryResponse{}, domain.ErrInvalidDate
		}
		start = d
	}

	if start.After(end) {
		return domain.WeightHistoryResponse{}, domain.ErrInvalidDateRange
	}

	entries, err := s.weightRepository.GetWeights(ctx, userID, start, end)
	if err != nil {
		return domain.WeightHistoryResponse{}, err
	}

	res := domain.WeightHistoryResponse{
		Entries: make([]domain.WeightEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, toWeightResponse(e))
	}

	if len(entries) > 1 {
		change := entries[len(entries)-1].WeightKg - entries[0].WeightKg
		res.ChangeKg = round(change, 1)
		res.ChangeLb = round(change*lbPerKg, 1)
	}

	return res, nil
}

func (s *weightService) DeleteWeight(ctx context.Context, id string, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	entry, err := s.weightRepository.GetWeightByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWeightEntryNotFound
		}
		return err
	}

	if entry.UserID.String() != userID {
		return domain.ErrUnauthorizedWeightAccess
	}

	return s.weightRepository.DeleteWeight(ctx, id)
}

func toWeightResponse(e *entities.WeightEntry) domain.WeightEntryResponse {
	return domain.WeightEntryResponse{
		ID:       e.ID.String(),
		Date:     e.Date.Format(domain.DateLayout),
		WeightKg: round(e.WeightKg, 1),
		WeightLb: round(e.WeightKg*lbPerKg, 1),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
