package handlers

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/pkg/draft"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DraftHandler interface {
		SaveDraft(c *fiber.Ctx) error
		GetDraft(c *fiber.Ctx) error
		DeleteDraft(c *fiber.Ctx) error
	}

	draftHandler struct {
		draftService draft.DraftService
		validator    *validator.Validate
	}
)

func NewDraftHandler(draftService draft.DraftService, validator *validator.Validate) DraftHandler {
	return &draftHandler{
		draftService: draftService,
		validator:    validator,
	}
}

func (h *draftHandler) SaveDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SaveDraftRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveDraft, err)
	}

	res, err := h.draftService.SaveDraft(c.UserContext(), c.Params("context"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSaveDraft, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveDraft)
}

func (h *draftHandler) GetDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.draftService.GetDraft(c.UserContext(), c.Params("context"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDraft, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDraft)
}

func (h *draftHandler) DeleteDraft(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.draftService.DeleteDraft(c.UserContext(), c.Params("context"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteDraft, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDraft)
}
