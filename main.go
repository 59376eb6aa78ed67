package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/job-analysis/backend/internal/config"
	"github.com/job-analysis/backend/internal/db"
	"github.com/job-analysis/backend/internal/handler"
	"github.com/job-analysis/backend/internal/service"
)

// @title Job Analysis API
// @version 1.0.0
// @description API for managing users, prompts, roles, and profile matching
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.Postgres); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}

	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to init token service: %v", err)
	}
	users := service.NewUserService(repo, tokens)

	router := gin.Default()
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials))

	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	userHandler := handler.NewUserHandler(users)

	api := router.Group("/job_analysis")
	api.POST("/user/login", userHandler.Login)

	protected := api.Group("", handler.AuthMiddleware(tokens))
	protected.POST("/user/adduser", userHandler.AddUser)
	protected.PUT("/user/updateuser", userHandler.UpdateUser)
	protected.PUT("/user/deleteuser/:id", userHandler.DeleteUser)
	protected.POST("/user/me", userHandler.Me)
	protected.GET("/user/getallusers/:companyId", userHandler.GetAllUsers)
	protected.GET("/user/getallinactiveusers", userHandler.GetAllInactiveUsers)

	log.Printf("Listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
