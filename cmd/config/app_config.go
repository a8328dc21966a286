package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"Sweet-Recipes-Backend/internal/api/handlers"
	"Sweet-Recipes-Backend/internal/api/routes"
	"Sweet-Recipes-Backend/internal/middleware"
	"Sweet-Recipes-Backend/internal/utils"
	"Sweet-Recipes-Backend/internal/utils/storage"
	"Sweet-Recipes-Backend/pkg/category"
	"Sweet-Recipes-Backend/pkg/jwt"
	"Sweet-Recipes-Backend/pkg/recipe"
	"Sweet-Recipes-Backend/pkg/shopping"
	"Sweet-Recipes-Backend/pkg/tag"
	"Sweet-Recipes-Backend/pkg/transfer"
	"Sweet-Recipes-Backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         16 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Paris",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	disk := storage.NewLocalDisk(utils.GetConfig("UPLOAD_DIR"))

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	tagRepository := tag.NewTagRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, s3, disk)
	categoryService := category.NewCategoryService(categoryRepository)
	tagService := tag.NewTagService(tagRepository)
	shoppingService := shopping.NewShoppingService(recipeRepository, userRepository)
	transferService := transfer.NewTransferService(recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	tagHandler := handlers.NewTagHandler(tagService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, validator)
	transferHandler := handlers.NewTransferHandler(transferService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		CategoryHandler: categoryHandler,
		TagHandler:      tagHandler,
		ShoppingHandler: shoppingHandler,
		TransferHandler: transferHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
