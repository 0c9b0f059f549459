package routes

import (
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/api/handlers"
	"nutrilog-backend/internal/middleware"
	"nutrilog-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App           *fiber.App
	DayLogHandler handlers.DayLogHandler
	FoodHandler   handlers.FoodHandler
	RecipeHandler handlers.RecipeHandler
	GoalHandler   handlers.GoalHandler
	WeightHandler handlers.WeightHandler
	NoteHandler   handlers.NoteHandler
	DraftHandler  handlers.DraftHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Days()
	c.Foods()
	c.Recipes()
	c.Goals()
	c.Weights()
	c.Dietitian()
	c.Drafts()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Days() {
	days := c.App.Group("/api/v1/days", c.Middleware.AuthMiddleware(c.JWTService))
	{
		days.Get("/:date", c.DayLogHandler.GetDay)
		days.Post("/:date/meals", c.DayLogHandler.AddMeal)
		days.Delete("/:date/meals/:meal_id", c.DayLogHandler.DeleteMeal)
		days.Post("/:date/items", c.DayLogHandler.AddItem)
		days.Delete("/:date/items/:item_id", c.DayLogHandler.DeleteItem)
		days.Put("/:date/water", c.DayLogHandler.SetWater)
		days.Post("/:date/water/adjust", c.DayLogHandler.AdjustWater)
		days.Post("/:date/lock", c.DayLogHandler.ToggleLock)
	}

	c.App.Get("/api/v1/weeks/:date", c.Middleware.AuthMiddleware(c.JWTService), c.DayLogHandler.GetWeek)
}

func (c *Config) Foods() {
	foods := c.App.Group("/api/v1/foods", c.Middleware.AuthMiddleware(c.JWTService))

	// external lookup
	foods.Get("/search", c.FoodHandler.SearchExternal)
	foods.Post("/import", c.FoodHandler.ImportExternal)

	foods.Post("", c.FoodHandler.CreateFood)
	foods.Get("", c.FoodHandler.GetFoods)
	foods.Get("/:id", c.FoodHandler.GetFoodDetails)
	foods.Put("/:id", c.FoodHandler.UpdateFood)
	foods.Delete("/:id", c.FoodHandler.DeleteFood)
	foods.Post("/:id/convert", c.FoodHandler.ConvertFood)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		recipes.Post("", c.RecipeHandler.CreateRecipe)
		recipes.Get("", c.RecipeHandler.GetRecipes)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/items", c.RecipeHandler.AddRecipeItem)
		recipes.Delete("/:id/items/:item_id", c.RecipeHandler.DeleteRecipeItem)
		recipes.Post("/:id/convert", c.RecipeHandler.ConvertRecipe)
	}
}

func (c *Config) Goals() {
	goals := c.App.Group("/api/v1/goals", c.Middleware.AuthMiddleware(c.JWTService))
	{
		goals.Get("", c.GoalHandler.GetGoal)
		goals.Put("", c.GoalHandler.UpsertGoal)
		goals.Get("/report/:date", c.GoalHandler.GetReport)
	}
}

func (c *Config) Weights() {
	weights := c.App.Group("/api/v1/weights", c.Middleware.AuthMiddleware(c.JWTService))
	{
		weights.Post("", c.WeightHandler.LogWeight)
		weights.Get("", c.WeightHandler.GetWeights)
		weights.Delete("/:id", c.WeightHandler.DeleteWeight)
	}
}

func (c *Config) Dietitian() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Post("/api/v1/dietitian/clients", auth, c.Middleware.OnlyRole(domain.RoleDietitian), c.NoteHandler.LinkClient)

	links := c.App.Group("/api/v1/links", auth)
	{
		links.Get("", c.NoteHandler.GetLinks)
		links.Delete("/:id", c.NoteHandler.UnlinkClient)
		links.Post("/:id/notes", c.NoteHandler.CreateNote)
		links.Get("/:id/notes", c.NoteHandler.GetNotes)
	}

	c.App.Delete("/api/v1/notes/:id", auth, c.NoteHandler.DeleteNote)
}

func (c *Config) Drafts() {
	drafts := c.App.Group("/api/v1/drafts", c.Middleware.AuthMiddleware(c.JWTService))
	{
		drafts.Get("/:context", c.DraftHandler.GetDraft)
		drafts.Put("/:context", c.DraftHandler.SaveDraft)
		drafts.Delete("/:context", c.DraftHandler.DeleteDraft)
	}
}
