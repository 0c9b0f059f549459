package handlers

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/pkg/weight"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WeightHandler interface {
		LogWeight(c *fiber.Ctx) error
		GetWeights(c *fiber.Ctx) error
		DeleteWeight(c *fiber.Ctx) error
	}

	weightHandler struct {
		weightService weight.WeightService
		validator     *validator.Validate
	}
)

func NewWeightHandler(weightService weight.WeightService, validator *validator.Validate) WeightHandler {
	return &weightHandler{
		weightService: weightService,
		validator:     validator,
	}
}

func (h *weightHandler) LogWeight(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.LogWeightRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogWeight, err)
	}

	res, err := h.weightService.LogWeight(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedLogWeight, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessLogWeight)
}

func (h *weightHandler) GetWeights(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.weightService.GetWeights(c.UserContext(), c.Query("from"), c.Query("to"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetWeights, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeights)
}

func (h *weightHandler) DeleteWeight(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.weightService.DeleteWeight(c.UserContext(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteWeight, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteWeight)
}
