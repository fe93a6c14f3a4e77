package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"experiencehub/internal/config"
	"experiencehub/internal/database"
	"experiencehub/internal/domain/auth"
	"experiencehub/internal/domain/comment"
	"experiencehub/internal/domain/experience"
	"experiencehub/internal/domain/notification"
	"experiencehub/internal/domain/tag"
	"experiencehub/internal/domain/user"
	"experiencehub/internal/middleware"
	"experiencehub/internal/pkg/token"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	tokens := token.New(cfg.AuthSecret)

	authRepo := auth.NewUserRepository(db)
	notificationRepo := notification.NewRepository(db)
	userRepo := user.NewRepository(db)
	experienceRepo := experience.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	tagRepo := tag.NewRepository(db)

	notificationService := notification.NewService(notificationRepo)
	authService := auth.NewService(authRepo, tokens, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := user.NewService(userRepo, notificationService)
	experienceService := experience.NewService(experienceRepo, notificationService)
	commentService := comment.NewService(commentRepo, experienceRepo, notificationService)

	authHandler := auth.NewHandler(authService, cfg.RefreshTokenTTL, cfg.CookieSecure)
	userHandler := user.NewHandler(userService)
	experienceHandler := experience.NewHandler(experienceService)
	commentHandler := comment.NewHandler(commentService)
	notificationHandler := notification.NewHandler(notificationService)
	tagHandler := tag.NewHandler(tagRepo)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(20, 40))

	r.Static("/uploads", "./public/uploads")

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Session(tokens, authRepo, cfg.AccessTokenTTL))

	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth())

	auth.RegisterRoutes(v1, protected, authHandler)
	user.RegisterRoutes(v1, protected, userHandler)
	experience.RegisterRoutes(v1, protected, experienceHandler)
	comment.RegisterRoutes(v1, protected, commentHandler)
	tag.RegisterRoutes(v1, tagHandler)
	notification.RegisterRoutes(protected, notificationHandler)

	log.Printf("listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
