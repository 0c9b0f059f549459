package handlers

import (
	"errors"
	"nutrilog-backend/domain"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var (
	notFoundErrors = []error{
		domain.ErrFoodNotFound, domain.ErrRecipeNotFound, domain.ErrRecipeItemNotFound,
		domain.ErrMealNotFound, domain.ErrMealItemNotFound, domain.ErrGoalNotFound,
		domain.ErrWeightEntryNotFound, domain.ErrLinkNotFound, domain.ErrNoteNotFound,
		domain.ErrDraftNotFound,
	}
	forbiddenErrors = []error{
		domain.ErrUnauthorizedFoodAccess, domain.ErrUnauthorizedRecipeAccess,
		domain.ErrUnauthorizedDayAccess, domain.ErrUnauthorizedWeightAccess,
		domain.ErrUnauthorizedLinkAccess, domain.ErrUnauthorizedNoteAccess,
		domain.ErrNotDietitian, domain.ErrUserNotAllowed,
	}
	conflictErrors = []error{
		domain.ErrDayLocked, domain.ErrClientAlreadyLinked,
	}
)

// statusFor maps service errors onto HTTP status codes. Anything unknown is
// reported as a bad request.
func statusFor(err error) int {
	switch {
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound
	case isAny(err, forbiddenErrors):
		return fiber.StatusForbidden
	case isAny(err, conflictErrors):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrLookupUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusBadRequest
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func pagination(c *fiber.Ctx, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	return page, limit
}

func paginated(items any, page, limit int, count int64) fiber.Map {
	return fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}
}
