package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/linklab/linklab-api/internal/config"
	"github.com/linklab/linklab-api/internal/handlers"
	"github.com/linklab/linklab-api/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
	applicationHandler *handlers.ApplicationHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Auth — public
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Posts — list and detail are public, create requires auth
	posts := app.Group("/posts")
	posts.Get("/", postHandler.List)
	posts.Get("/:id", postHandler.GetByID)
	posts.Post("/", middleware.JWTProtected(cfg), postHandler.Create)
	posts.Post("/:postId/apply", middleware.JWTProtected(cfg), applicationHandler.Apply)
	posts.Get("/:postId/applications", middleware.JWTProtected(cfg), applicationHandler.ListForPost)

	// Decisions — post owner only (enforced in the service)
	applications := app.Group("/applications", middleware.JWTProtected(cfg))
	applications.Post("/:id/accept", applicationHandler.Accept)
	applications.Post("/:id/reject", applicationHandler.Reject)
}
