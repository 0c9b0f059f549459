package handlers

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/pkg/note"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	NoteHandler interface {
		LinkClient(c *fiber.Ctx) error
		UnlinkClient(c *fiber.Ctx) error
		GetLinks(c *fiber.Ctx) error
		CreateNote(c *fiber.Ctx) error
		GetNotes(c *fiber.Ctx) error
		DeleteNote(c *fiber.Ctx) error
	}

	noteHandler struct {
		noteService note.NoteService
		validator   *validator.Validate
	}
)

func NewNoteHandler(noteService note.NoteService, validator *validator.Validate) NoteHandler {
	return &noteHandler{
		noteService: noteService,
		validator:   validator,
	}
}

func (h *noteHandler) LinkClient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	email, _ := c.Locals("email").(string)
	req := new(domain.LinkClientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLinkClient, err)
	}

	res, err := h.noteService.LinkClient(c.UserContext(), *req, userID, role, email)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedLinkClient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessLinkClient)
}

func (h *noteHandler) UnlinkClient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.noteService.UnlinkClient(c.UserContext(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUnlinkClient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnlinkClient)
}

func (h *noteHandler) GetLinks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)

	res, err := h.noteService.GetLinks(c.UserContext(), userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLinks, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLinks)
}

func (h *noteHandler) CreateNote(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateNoteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateNote, err)
	}

	res, err := h.noteService.CreateNote(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateNote, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateNote)
}

func (h *noteHandler) GetNotes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c, 20)

	notes, count, err := h.noteService.GetNotes(c.UserContext(), c.Params("id"), page, limit, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetNotes, err)
	}

	return presenters.SuccessResponse(c, paginated(notes, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetNotes)
}

func (h *noteHandler) DeleteNote(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.noteService.DeleteNote(c.UserContext(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteNote, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteNote)
}
