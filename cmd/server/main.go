package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-task-api/internal/config"
	"github.com/mizuki-dev/project-task-api/internal/database"
	"github.com/mizuki-dev/project-task-api/internal/handlers"
	"github.com/mizuki-dev/project-task-api/internal/middleware"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"github.com/mizuki-dev/project-task-api/internal/services"
	"github.com/mizuki-dev/project-task-api/internal/sweeper"
)

func main() {
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	db := database.GetDB()

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	membershipService := services.NewMembershipService(membershipRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	taskHandler := handlers.NewTaskHandler(taskService)

	router := gin.Default()
	registerRoutes(router, cfg, authHandler, userHandler, projectHandler, membershipHandler, taskHandler)

	sweep := sweeper.New(taskRepo, cfg.SweepInterval, cfg.RetentionWindow)
	sweep.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	sweep.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func registerRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	membershipHandler *handlers.MembershipHandler,
	taskHandler *handlers.TaskHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("/")
	authed.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		authed.GET("/auth/me", authHandler.GetCurrentUser)

		authed.GET("/users", userHandler.ListUsers)
		authed.GET("/users/count", userHandler.CountUsers)
		authed.GET("/users/:id", userHandler.GetUser)
		authed.PATCH("/users/:id", userHandler.UpdateUser)
		authed.PUT("/users/:id", userHandler.ReplaceUser)
		authed.DELETE("/users/:id", userHandler.DeleteUser)

		authed.POST("/projects", projectHandler.CreateProject)
		authed.GET("/projects", projectHandler.ListProjects)
		authed.GET("/projects/:projectId/creator", projectHandler.GetProjectCreator)

		authed.GET("/project-members", membershipHandler.ListMemberships)
		authed.GET("/project-members/count", membershipHandler.CountMemberships)
		authed.POST("/project-members", membershipHandler.CreateMembership)
		authed.GET("/project-members/:id", membershipHandler.GetMembership)
		authed.PATCH("/project-members/:id", membershipHandler.UpdateMembership)
		authed.PUT("/project-members/:id", membershipHandler.ReplaceMembership)
		authed.DELETE("/project-members/:id", membershipHandler.DeleteMembership)

		tasks := authed.Group("/projects/:projectId/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.GET("/:taskId/creator", taskHandler.GetTaskCreator)
			tasks.GET("/:taskId/assignee", taskHandler.GetTaskAssignee)
			tasks.PATCH("/:taskId", taskHandler.UpdateTask)
			tasks.PUT("/:taskId", taskHandler.ReplaceTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
			tasks.DELETE("/:taskId/force", taskHandler.ForceDeleteTask)
		}
	}
}
