package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/theleywin/Backend-Blog/src/controllers"
	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/middleware"
	"github.com/theleywin/Backend-Blog/src/services"
)

// Dependencies is everything the HTTP layer needs, built once in main
type Dependencies struct {
	Config lib.Config
	Log    zerolog.Logger
	Tokens *lib.TokenService
	Auth   *services.AuthService
	Posts  *services.PostService
}

// NewApp builds the Fiber app with middleware and every route registered
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "blog-backend",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: errorHandler(deps.Log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(deps.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.Config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	protect := middleware.ProtectRoute(deps.Tokens)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(lib.MessageResponse("ok"))
	})

	AuthRoutes(app, controllers.NewAuthController(deps.Auth, deps.Log))
	UserRoutes(app, controllers.NewUserController(deps.Auth, deps.Log), protect)
	PostRoutes(app, controllers.NewPostController(deps.Posts, deps.Log), protect)

	if deps.Config.UploadDir != "" {
		app.Static("/uploads", deps.Config.UploadDir)
	}

	return app
}

// errorHandler answers anything a handler returned instead of writing a response
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(lib.MessageResponse(fe.Message))
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal Server Error"))
	}
}
