package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/revxlabs/revx/internal/config"
	"github.com/revxlabs/revx/internal/database"
	"github.com/revxlabs/revx/internal/handlers"
	"github.com/revxlabs/revx/internal/middleware"
	"github.com/revxlabs/revx/internal/repository"
	"github.com/revxlabs/revx/internal/services"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("failed to add indexes")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	projectRepo := repository.NewProjectRepository(database.GetDB())
	tagRepo := repository.NewTagRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(userRepo, database.GetDB(), cfg.JWTSecret)
	projectService := services.NewProjectService(projectRepo, userRepo, tagRepo)
	userService := services.NewUserService(userRepo, projectRepo)
	adminService := services.NewAdminService(userRepo, projectRepo)
	uploadService := services.NewUploadService(cfg.ImageKitPrivateKey)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to RevX API",
		})
	})

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/change-password", requireAuth, authHandler.ChangePassword)
	}

	// Project routes
	project := r.Group("/project")
	{
		project.GET("/list", projectHandler.ListProjects)
		project.GET("/get/:id", projectHandler.GetProject)
		project.GET("/tags", projectHandler.ListTags)

		project.POST("/create", requireAuth, projectHandler.CreateProject)
		project.PUT("/update/:id", requireAuth, middleware.RequireProjectOwner(), projectHandler.UpdateProject)
		project.DELETE("/delete/:id", requireAuth, middleware.RequireProjectOwner(), projectHandler.DeleteProject)

		project.POST("/add_review/:id", requireAuth, projectHandler.AddReview)
		project.DELETE("/remove_review/:id", requireAuth, projectHandler.RemoveReview)

		project.POST("/add_contributor/:id", requireAuth, middleware.RequireProjectOwner(), projectHandler.AddContributor)
		project.DELETE("/remove_contributor/:id/:contributor_id", requireAuth, middleware.RequireProjectOwner(), projectHandler.RemoveContributor)
	}

	// User routes
	user := r.Group("/user")
	user.Use(requireAuth)
	{
		user.GET("/my_projects", userHandler.MyProjects)
		user.PUT("/update", userHandler.UpdateProfile)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(requireAuth, middleware.RequireAdmin())
	{
		admin.GET("/metrics", adminHandler.Metrics)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/projects", adminHandler.ListProjects)
		admin.PUT("/users/:user_id/admin", adminHandler.SetUserAdmin)
		admin.DELETE("/users/:user_id", adminHandler.DeleteUser)
		admin.DELETE("/projects/:project_id", adminHandler.DeleteProject)
	}

	// Upload signature for the asset host
	r.GET("/imagekit/auth", uploadHandler.AuthParams)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
