package handlers

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/pkg/goal"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GoalHandler interface {
		GetGoal(c *fiber.Ctx) error
		UpsertGoal(c *fiber.Ctx) error
		GetReport(c *fiber.Ctx) error
	}

	goalHandler struct {
		goalService goal.GoalService
		validator   *validator.Validate
	}
)

func NewGoalHandler(goalService goal.GoalService, validator *validator.Validate) GoalHandler {
	return &goalHandler{
		goalService: goalService,
		validator:   validator,
	}
}

func (h *goalHandler) GetGoal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.goalService.GetGoal(c.UserContext(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetGoal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGoal)
}

func (h *goalHandler) UpsertGoal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpsertGoalRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertGoal, err)
	}

	res, err := h.goalService.UpsertGoal(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpsertGoal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpsertGoal)
}

func (h *goalHandler) GetReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.goalService.Report(c.UserContext(), c.Params("date"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}
