package handlers

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/pkg/daylog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DayLogHandler interface {
		GetDay(c *fiber.Ctx) error
		AddMeal(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		DeleteMeal(c *fiber.Ctx) error
		SetWater(c *fiber.Ctx) error
		AdjustWater(c *fiber.Ctx) error
		ToggleLock(c *fiber.Ctx) error
		GetWeek(c *fiber.Ctx) error
	}

	dayLogHandler struct {
		dayLogService daylog.DayLogService
		validator     *validator.Validate
	}
)

func NewDayLogHandler(dayLogService daylog.DayLogService, validator *validator.Validate) DayLogHandler {
	return &dayLogHandler{
		dayLogService: dayLogService,
		validator:     validator,
	}
}

func (h *dayLogHandler) GetDay(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dayLogService.GetDay(c.UserContext(), c.Params("date"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDay, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDay)
}

func (h *dayLogHandler) AddMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddMealRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMeal, err)
	}

	res, err := h.dayLogService.AddMeal(c.UserContext(), c.Params("date"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMeal)
}

func (h *dayLogHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddMealItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMealItem, err)
	}

	res, err := h.dayLogService.AddItem(c.UserContext(), c.Params("date"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddMealItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMealItem)
}

func (h *dayLogHandler) DeleteItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dayLogService.DeleteItem(c.UserContext(), c.Params("date"), c.Params("item_id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteItem)
}

func (h *dayLogHandler) DeleteMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dayLogService.DeleteMeal(c.UserContext(), c.Params("date"), c.Params("meal_id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteMeal)
}

func (h *dayLogHandler) SetWater(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SetWaterRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateWater, err)
	}

	res, err := h.dayLogService.SetWater(c.UserContext(), c.Params("date"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateWater, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateWater)
}

func (h *dayLogHandler) AdjustWater(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AdjustWaterRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateWater, err)
	}

	res, err := h.dayLogService.AdjustWater(c.UserContext(), c.Params("date"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateWater, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateWater)
}

func (h *dayLogHandler) ToggleLock(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dayLogService.ToggleLock(c.UserContext(), c.Params("date"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedToggleLock, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleLock)
}

func (h *dayLogHandler) GetWeek(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dayLogService.GetWeek(c.UserContext(), c.Params("date"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetWeek, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeek)
}
