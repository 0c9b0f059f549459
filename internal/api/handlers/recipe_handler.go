package handlers

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/presenters"
	"nutrilog-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		AddRecipeItem(c *fiber.Ctx) error
		DeleteRecipeItem(c *fiber.Ctx) error
		ConvertRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRecipe(c.UserContext(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c, 10)

	recipes, count, err := h.recipeService.GetRecipes(c.UserContext(), page, limit, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, paginated(recipes, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetRecipeByID(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) AddRecipeItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.LineItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipeItem, err)
	}

	res, err := h.recipeService.AddRecipeItem(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddRecipeItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddRecipeItem)
}

func (h *recipeHandler) DeleteRecipeItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.DeleteRecipeItem(c.UserContext(), c.Params("id"), c.Params("item_id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteRecipeItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteRecipeItem)
}

func (h *recipeHandler) ConvertRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ConvertRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConvert, err)
	}

	res, err := h.recipeService.Convert(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedConvert, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConvert)
}
