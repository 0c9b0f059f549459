package utils

import (
	"nutrilog-backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_LineItem(t *testing.T) {
	InitValidator()

	tests := []struct {
		name  string
		req   domain.LineItemRequest
		valid bool
	}{
		{
			name:  "food with serving",
			req:   domain.LineItemRequest{Kind: "food", SourceID: "4b0a3c3e-8f64-4a55-9d36-1d8f2f1d6b2a", Quantity: 2, Unit: "Tbsp"},
			valid: true,
		},
		{
			name: "food without source",
			req:  domain.LineItemRequest{Kind: "food", Quantity: 2, Unit: "tbsp"},
		},
		{
			name: "unknown unit",
			req:  domain.LineItemRequest{Kind: "food", SourceID: "4b0a3c3e-8f64-4a55-9d36-1d8f2f1d6b2a", Quantity: 2, Unit: "gallon"},
		},
		{
			name: "custom without nutrients",
			req:  domain.LineItemRequest{Kind: "custom", Name: "toast"},
		},
		{
			name:  "custom",
			req:   domain.LineItemRequest{Kind: "custom", Name: "toast", Nutrients: &domain.NutrientsRequest{Calories: 240}},
			valid: true,
		},
		{
			name:  "note",
			req:   domain.LineItemRequest{Kind: "note", Name: "ate out"},
			valid: true,
		},
		{
			name: "bad kind",
			req:  domain.LineItemRequest{Kind: "snack", Name: "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Struct(tt.req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
