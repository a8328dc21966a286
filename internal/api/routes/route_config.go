package routes

import (
	"github.com/gofiber/fiber/v2"

	"Sweet-Recipes-Backend/internal/api/handlers"
	"Sweet-Recipes-Backend/internal/middleware"
	"Sweet-Recipes-Backend/pkg/jwt"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	CategoryHandler handlers.CategoryHandler
	TagHandler      handlers.TagHandler
	ShoppingHandler handlers.ShoppingHandler
	TransferHandler handlers.TransferHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Categories()
	c.Tags()
	c.Shopping()
	c.Transfer()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		recipes.Get("", c.RecipeHandler.GetRecipes)
		recipes.Post("", c.RecipeHandler.CreateRecipe)
		recipes.Get("/history", c.RecipeHandler.GetCookingHistory)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/rate", c.RecipeHandler.RateRecipe)
		recipes.Post("/:id/favorite", c.RecipeHandler.ToggleFavorite)
		recipes.Post("/:id/share", c.RecipeHandler.ShareRecipe)
		recipes.Delete("/:id/share", c.RecipeHandler.RevokeShare)
		recipes.Post("/:id/cooked", c.RecipeHandler.MarkAsCooked)
		recipes.Get("/:id/document", c.RecipeHandler.DownloadDocument)
	}
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories", c.Middleware.AuthMiddleware(c.JWTService))
	{
		categories.Get("", c.CategoryHandler.GetCategories)
		categories.Post("", c.CategoryHandler.AddCategory)
		categories.Post("/init", c.CategoryHandler.InitDefaultCategories)
		categories.Put("/:id", c.CategoryHandler.RenameCategory)
		categories.Delete("/:id", c.CategoryHandler.DeleteCategory)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/v1/tags", c.Middleware.AuthMiddleware(c.JWTService))
	{
		tags.Get("", c.TagHandler.GetTags)
		tags.Delete("/:id", c.TagHandler.DeleteTag)
	}
}

func (c *Config) Shopping() {
	shopping := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	{
		shopping.Post("", c.ShoppingHandler.BuildShoppingList)
		shopping.Post("/email", c.ShoppingHandler.EmailShoppingList)
	}
}

func (c *Config) Transfer() {
	transfer := c.App.Group("/api/v1", c.Middleware.AuthMiddleware(c.JWTService))
	{
		transfer.Get("/export", c.TransferHandler.ExportRecipes)
		transfer.Post("/import", c.TransferHandler.ImportRecipes)
	}
}

// GuestRoute exposes the share link and a readiness probe without auth.
func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/v1/shared/:token", c.RecipeHandler.GetSharedRecipe)
}
