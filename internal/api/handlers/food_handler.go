package handlers

import (
	"errors"
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/pkg/food"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		CreateFood(c *fiber.Ctx) error
		UpdateFood(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
		GetFoods(c *fiber.Ctx) error
		GetFoodDetails(c *fiber.Ctx) error
		ConvertFood(c *fiber.Ctx) error
		SearchExternal(c *fiber.Ctx) error
		ImportExternal(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodHandler) CreateFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFood, err)
	}

	res, err := h.foodService.CreateFood(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFood)
}

func (h *foodHandler) UpdateFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	foodID := c.Params("id")
	req := new(domain.UpdateFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFood, err)
	}

	res, err := h.foodService.UpdateFood(c.UserContext(), foodID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFood)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.foodService.DeleteFood(c.UserContext(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteFood, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFood)
}

func (h *foodHandler) GetFoods(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c, 20)

	foods, count, err := h.foodService.GetFoods(c.UserContext(), userID, c.Query("q"), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessResponse(c, paginated(foods, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) GetFoodDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.foodService.GetFoodByID(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFood)
}

func (h *foodHandler) ConvertFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ConvertRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConvert, err)
	}

	res, err := h.foodService.Convert(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedConvert, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConvert)
}

func (h *foodHandler) SearchExternal(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	res, err := h.foodService.SearchExternal(c.UserContext(), c.Query("q"), limit)
	if errors.Is(err, domain.ErrLookupUnavailable) {
		return presenters.ErrorResponseWithData(c, fiber.StatusServiceUnavailable, domain.MessageLookupUnavailable, err, res)
	}
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSearchFoods, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchFoods)
}

func (h *foodHandler) ImportExternal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ImportFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportFood, err)
	}

	res, err := h.foodService.ImportExternal(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedImportFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessImportFood)
}
