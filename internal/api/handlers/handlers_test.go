package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/internal/utils"
	"nutrilog-backend/pkg/daylog"
	"nutrilog-backend/pkg/food"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDayLogService struct {
	daylog.DayLogService
	locked bool
	added  domain.AddMealItemRequest
}

func (f *fakeDayLogService) GetDay(_ context.Context, date string, userID string) (domain.DayResponse, error) {
	if date == "bad" {
		return domain.DayResponse{}, domain.ErrInvalidDate
	}
	return domain.DayResponse{Date: date, IsLocked: f.locked}, nil
}

func (f *fakeDayLogService) AddItem(_ context.Context, date string, req domain.AddMealItemRequest, userID string) (domain.AddMealItemResponse, error) {
	if f.locked {
		return domain.AddMealItemResponse{}, domain.ErrDayLocked
	}
	f.added = req
	return domain.AddMealItemResponse{}, nil
}

type fakeFoodService struct {
	food.FoodService
	searchErr error
}

func (f *fakeFoodService) SearchExternal(_ context.Context, query string, limit int) ([]domain.ExternalFoodResponse, error) {
	if f.searchErr != nil {
		return []domain.ExternalFoodResponse{}, f.searchErr
	}
	return []domain.ExternalFoodResponse{{ExternalID: "171705", Name: query}}, nil
}

func (f *fakeFoodService) GetFoodByID(_ context.Context, id string, userID string) (domain.FoodResponse, error) {
	switch id {
	case "mine":
		return domain.FoodResponse{Name: "Butter"}, nil
	case "theirs":
		return domain.FoodResponse{}, domain.ErrUnauthorizedFoodAccess
	}
	return domain.FoodResponse{}, domain.ErrFoodNotFound
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "7d4f5c8e-2b1a-4a53-9f0e-1c2d3e4f5a6b")
		return c.Next()
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, presenters.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out presenters.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestDayLogHandler(t *testing.T) {
	utils.InitValidator()
	svc := &fakeDayLogService{}
	h := NewDayLogHandler(svc, utils.Validate)

	app := newTestApp()
	app.Get("/days/:date", h.GetDay)
	app.Post("/days/:date/items", h.AddItem)

	t.Run("get day", func(t *testing.T) {
		status, res := do(t, app, http.MethodGet, "/days/2024-03-12", "")
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, res.Status)
		assert.Equal(t, domain.MessageSuccessGetDay, res.Message)
	})

	t.Run("invalid date", func(t *testing.T) {
		status, res := do(t, app, http.MethodGet, "/days/bad", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, res.Status)
		assert.Equal(t, domain.ErrInvalidDate.Error(), res.Error)
	})

	body := `{"meal_name":"Breakfast","kind":"custom","name":"Toast","quantity":1,"unit":"each","nutrients":{"calories":240}}`

	t.Run("add item", func(t *testing.T) {
		status, res := do(t, app, http.MethodPost, "/days/2024-03-12/items", body)
		assert.Equal(t, http.StatusCreated, status, res.Error)
		assert.Equal(t, "Toast", svc.added.Name)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		status, res := do(t, app, http.MethodPost, "/days/2024-03-12/items", `{}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, domain.MessageFailedAddMealItem, res.Message)
	})

	t.Run("locked day conflicts", func(t *testing.T) {
		svc.locked = true
		defer func() { svc.locked = false }()

		status, res := do(t, app, http.MethodPost, "/days/2024-03-12/items", body)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, domain.ErrDayLocked.Error(), res.Error)
	})
}

func TestFoodHandler(t *testing.T) {
	utils.InitValidator()
	svc := &fakeFoodService{}
	h := NewFoodHandler(svc, utils.Validate)

	app := newTestApp()
	app.Get("/foods/search", h.SearchExternal)
	app.Get("/foods/:id", h.GetFoodDetails)

	t.Run("search", func(t *testing.T) {
		status, res := do(t, app, http.MethodGet, "/foods/search?q=apple", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, res.Data, 1)
	})

	t.Run("lookup outage returns empty list", func(t *testing.T) {
		svc.searchErr = fmt.Errorf("%w: search: timeout", domain.ErrLookupUnavailable)
		defer func() { svc.searchErr = nil }()

		status, res := do(t, app, http.MethodGet, "/foods/search?q=apple", "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, domain.MessageLookupUnavailable, res.Message)
		assert.Equal(t, []any{}, res.Data)
	})

	t.Run("status mapping", func(t *testing.T) {
		status, _ := do(t, app, http.MethodGet, "/foods/mine", "")
		assert.Equal(t, http.StatusOK, status)

		status, _ = do(t, app, http.MethodGet, "/foods/theirs", "")
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = do(t, app, http.MethodGet, "/foods/missing", "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}
