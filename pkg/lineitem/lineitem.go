package lineitem

import (
	"context"
	"errors"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/nutrition"
	"strings"

	"github.com/google/uuid"
)

// ReferenceFinder loads a reference profile a line item can be converted
// from, checking that userID may use it.
type ReferenceFinder interface {
	FindReference(ctx context.Context, id string, userID string) (domain.ReferenceResult, error)
}

// Resolved is a line item ready to be stored: its nutrients are the rounded
// result of converting the reference to the requested serving.
type Resolved struct {
	Kind        string
	SourceID    *uuid.UUID
	Name        string
	ServingText string
	Nutrients   nutrition.Profile
	Basis       string
	Degraded    bool
}

var ErrUnsupportedKind = errors.New("unsupported line item kind")

type Resolver struct {
	finders map[string]ReferenceFinder
}

// NewResolver builds a resolver for food and recipe references. A nil finder
// disables that kind.
func NewResolver(foods, recipes ReferenceFinder) *Resolver {
	finders := make(map[string]ReferenceFinder, 2)
	if foods != nil {
		finders[entities.ItemKindFood] = foods
	}
	if recipes != nil {
		finders[entities.ItemKindRecipe] = recipes
	}
	return &Resolver{finders: finders}
}

func (r *Resolver) Resolve(ctx context.Context, req domain.LineItemRequest, userID string) (Resolved, error) {
	switch req.Kind {
	case entities.ItemKindFood, entities.ItemKindRecipe:
		return r.fromReference(ctx, req, userID)
	case entities.ItemKindCustom:
		return custom(req)
	case entities.ItemKindNote:
		return Resolved{Kind: entities.ItemKindNote, Name: strings.TrimSpace(req.Name)}, nil
	}
	return Resolved{}, ErrUnsupportedKind
}

func (r *Resolver) fromReference(ctx context.Context, req domain.LineItemRequest, userID string) (Resolved, error) {
	finder, ok := r.finders[req.Kind]
	if !ok {
		return Resolved{}, ErrUnsupportedKind
	}
	spec, err := Serving(req.Quantity, req.Unit)
	if err != nil {
		return Resolved{}, err
	}
	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		return Resolved{}, domain.ErrParseUUID
	}

	ref, err := finder.FindReference(ctx, req.SourceID, userID)
	if err != nil {
		return Resolved{}, err
	}
	conv := nutrition.Convert(ref.Reference, spec)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = ref.Name
	}
	return Resolved{
		Kind:        req.Kind,
		SourceID:    &sourceID,
		Name:        name,
		ServingText: conv.ServingText,
		Nutrients:   conv.Profile,
		Basis:       conv.Basis,
		Degraded:    conv.Degraded,
	}, nil
}

func custom(req domain.LineItemRequest) (Resolved, error) {
	if req.Nutrients == nil {
		return Resolved{}, domain.ErrNutrientsRequired
	}
	out := Resolved{
		Kind:      entities.ItemKindCustom,
		Name:      strings.TrimSpace(req.Name),
		Nutrients: req.Nutrients.Profile().Rounded(),
	}
	if req.Unit != "" {
		spec, err := Serving(req.Quantity, req.Unit)
		if err != nil {
			return Resolved{}, err
		}
		out.ServingText = spec.Describe()
	}
	return out, nil
}

// Serving validates a quantity and unit pair.
func Serving(quantity float64, unit string) (nutrition.ServingSpec, error) {
	if quantity <= 0 {
		return nutrition.ServingSpec{}, domain.ErrInvalidQuantity
	}
	u, err := nutrition.ParseUnit(unit)
	if err != nil {
		return nutrition.ServingSpec{}, domain.ErrInvalidUnit
	}
	return nutrition.ServingSpec{Quantity: quantity, Unit: u}, nil
}

func Response(id uuid.UUID, kind string, sourceID *uuid.UUID, name, servingText string, nutrients nutrition.Profile, order int) domain.LineItemResponse {
	res := domain.LineItemResponse{
		ID:          id.String(),
		Kind:        kind,
		Name:        name,
		ServingText: servingText,
		Nutrients:   nutrients,
		Order:       order,
	}
	if sourceID != nil {
		res.SourceID = sourceID.String()
	}
	return res
}
