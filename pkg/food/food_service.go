package food

import (
	"context"
	"errors"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/lineitem"
	"nutrilog-backend/pkg/lookup"
	"nutrilog-backend/pkg/nutrition"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		CreateFood(ctx context.Context, req domain.CreateFoodRequest, userID string) (domain.FoodResponse, error)
		UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest, userID string) (domain.FoodResponse, error)
		DeleteFood(ctx context.Context, id string, userID string) error
		GetFoods(ctx context.Context, userID string, query string, page, limit int) ([]domain.FoodResponse, int64, error)
		GetFoodByID(ctx context.Context, id string, userID string) (domain.FoodResponse, error)
		Convert(ctx context.Context, id string, req domain.ConvertRequest, userID string) (nutrition.Conversion, error)
		SearchExternal(ctx context.Context, query string, limit int) ([]domain.ExternalFoodResponse, error)
		ImportExternal(ctx context.Context, req domain.ImportFoodRequest, userID string) (domain.FoodResponse, error)
		FindReference(ctx context.Context, id string, userID string) (domain.ReferenceResult, error)
	}

	foodService struct {
		foodRepository FoodRepository
		lookup         lookup.Client
	}
)

func NewFoodService(foodRepository FoodRepository, lookupClient lookup.Client) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		lookup:         lookupClient,
	}
}

func (s *foodService) CreateFood(ctx context.Context, req domain.CreateFoodRequest, userID string) (domain.FoodResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodResponse{}, domain.ErrParseUUID
	}

	basis := nutrition.Basis(req.Basis)
	if basis != nutrition.BasisCup && basis != nutrition.Basis100Gram {
		return domain.FoodResponse{}, domain.ErrInvalidBasis
	}

	food := &entities.Food{
		ID:            uuid.New(),
		UserID:        userUUID,
		Name:          strings.TrimSpace(req.Name),
		Brand:         strings.TrimSpace(req.Brand),
		Basis:         basis,
		Nutrients:     req.Nutrients.Profile(),
		CupGramWeight: req.CupGramWeight,
		Source:        entities.FoodSourceUser,
	}

	if err := s.foodRepository.CreateFood(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}

func (s *foodService) UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest, userID string) (domain.FoodResponse, error) {
	food, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	if req.Name != "" {
		food.Name = strings.TrimSpace(req.Name)
	}

	if req.Brand != nil {
		food.Brand = strings.TrimSpace(*req.Brand)
	}

	if req.Nutrients != nil {
		food.Nutrients = req.Nutrients.Profile()
	}

	if req.CupGramWeight != nil {
		food.CupGramWeight = req.CupGramWeight
	}

	if err := s.foodRepository.UpdateFood(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}

func (s *foodService) DeleteFood(ctx context.Context, id string, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}

	return s.foodRepository.DeleteFood(ctx, id)
}

func (s *foodService) GetFoods(ctx context.Context, userID string, query string, page, limit int) ([]domain.FoodResponse, int64, error) {
	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = 20
	}

	foods, count, err := s.foodRepository.GetFoods(ctx, userID, query, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.FoodResponse, 0, len(foods))
	for _, food := range foods {
		res = append(res, toFoodResponse(food))
	}

	return res, count, nil
}

func (s *foodService) GetFoodByID(ctx context.Context, id string, userID string) (domain.FoodResponse, error) {
	food, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}

// Convert previews the nutrients of a serving without logging it.
func (s *foodService) Convert(ctx context.Context, id string, req domain.ConvertRequest, userID string) (nutrition.Conversion, error) {
	spec, err := lineitem.Serving(req.Quantity, req.Unit)
	if err != nil {
		return nutrition.Conversion{}, err
	}

	food, err := s.owned(ctx, id, userID)
	if err != nil {
		return nutrition.Conversion{}, err
	}

	return nutrition.Convert(food.Reference(), spec), nil
}

// SearchExternal returns an empty list alongside ErrLookupUnavailable when the
// lookup service cannot be reached.
func (s *foodService) SearchExternal(ctx context.Context, query string, limit int) ([]domain.ExternalFoodResponse, error) {
	res := []domain.ExternalFoodResponse{}
	if strings.TrimSpace(query) == "" {
		return res, nil
	}

	foods, err := s.lookup.Search(ctx, query, limit)
	if err != nil {
		if errors.Is(err, domain.ErrLookupUnavailable) {
			return res, domain.ErrLookupUnavailable
		}
		return res, err
	}

	for _, f := range foods {
		// Search payloads can omit measures; fetch them by id. A failure
		// leaves the candidate without a cup weight.
		if len(f.Portions) == 0 {
			if portions, err := s.lookup.Portions(ctx, f.ExternalID); err == nil {
				f.Portions = portions
			}
		}
		item := domain.ExternalFoodResponse{
			ExternalID: f.ExternalID,
			Name:       f.Name,
			Brand:      f.Brand,
			Nutrients:  f.Nutrients.Rounded(),
			Portions:   f.Portions,
		}
		if grams, ok := nutrition.ResolveCupGramWeight(f.Portions); ok {
			item.CupGramWeight = &grams
		}
		res = append(res, item)
	}

	return res, nil
}

// ImportExternal copies an external food into the user's library, per 100 g
// with the cup weight taken from its portions. Importing the same food twice
// returns the existing entry.
func (s *foodService) ImportExternal(ctx context.Context, req domain.ImportFoodRequest, userID string) (domain.FoodResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodResponse{}, domain.ErrParseUUID
	}

	existing, err := s.foodRepository.GetFoodByExternalID(ctx, userID, entities.FoodSourceUSDA, req.ExternalID)
	if err == nil {
		return toFoodResponse(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FoodResponse{}, err
	}

	external, err := s.lookup.Food(ctx, req.ExternalID)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = external.Name
	}

	food := &entities.Food{
		ID:         uuid.New(),
		UserID:     userUUID,
		Name:       name,
		Brand:      external.Brand,
		Basis:      nutrition.Basis100Gram,
		Nutrients:  external.Nutrients,
		Source:     entities.FoodSourceUSDA,
		ExternalID: req.ExternalID,
	}
	if grams, ok := nutrition.ResolveCupGramWeight(external.Portions); ok {
		food.CupGramWeight = &grams
	}

	if err := s.foodRepository.CreateFood(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}

func (s *foodService) FindReference(ctx context.Context, id string, userID string) (domain.ReferenceResult, error) {
	food, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.ReferenceResult{}, err
	}

	return domain.ReferenceResult{Name: food.Name, Reference: food.Reference()}, nil
}

func (s *foodService) owned(ctx context.Context, id string, userID string) (*entities.Food, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	food, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, err
	}

	if food.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedFoodAccess
	}

	return food, nil
}

func toFoodResponse(food *entities.Food) domain.FoodResponse {
	ref := food.Reference()
	return domain.FoodResponse{
		ID:            food.ID.String(),
		Name:          food.Name,
		Brand:         food.Brand,
		Basis:         food.Basis,
		Nutrients:     food.Nutrients,
		CupGramWeight: food.CupGramWeight,
		Source:        food.Source,
		ExternalID:    food.ExternalID,
		Reference:     ref.Describe(),
		Degraded:      ref.Degraded(),
	}
}
