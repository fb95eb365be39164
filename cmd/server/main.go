package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/adapters/github"
	httpAdapter "github.com/nghiatran/devconnect/adapters/http"
	"github.com/nghiatran/devconnect/adapters/media_storage"
	"github.com/nghiatran/devconnect/adapters/persistence"
	authUC "github.com/nghiatran/devconnect/internal/application/usecase/auth"
	githubUC "github.com/nghiatran/devconnect/internal/application/usecase/github"
	postUC "github.com/nghiatran/devconnect/internal/application/usecase/post"
	profileUC "github.com/nghiatran/devconnect/internal/application/usecase/profile"
	"github.com/nghiatran/devconnect/internal/config"
	"github.com/nghiatran/devconnect/pkg/auth"
	"github.com/nghiatran/devconnect/pkg/logger"
	"github.com/nghiatran/devconnect/pkg/tracing"
)

func main() {
	fmt.Println("Start DevConnect API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Tracing
	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "devconnect-api")
	if err != nil {
		appLogger.Warn("cannot init tracer provider, tracing disabled", zap.Error(err))
	} else {
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				appLogger.Warn("tracer provider shutdown", zap.Error(err))
			}
		}()
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}
	repoLister := github.NewRepoLister(cfg, appLogger)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, kafkaClient, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	currentUserUseCase := authUC.NewCurrentUserUseCase(userRepo)
	updateAvatarUseCase := authUC.NewUpdateAvatarUseCase(userRepo, uploader, appLogger)

	profileUseCase := profileUC.NewProfileUseCase(profileRepo, appLogger)
	experienceUseCase := profileUC.NewExperienceUseCase(profileRepo, appLogger)
	educationUseCase := profileUC.NewEducationUseCase(profileRepo, appLogger)
	deleteAccountUseCase := profileUC.NewDeleteAccountUseCase(postRepo, profileRepo, userRepo, kafkaClient, appLogger)
	listReposUseCase := githubUC.NewListReposUseCase(repoLister, redisClient, cfg.Github.CacheTTL, appLogger)

	createPostUseCase := postUC.NewCreatePostUseCase(postRepo, userRepo, kafkaClient, appLogger)
	listPostsUseCase := postUC.NewListPostsUseCase(postRepo, appLogger)
	getPostUseCase := postUC.NewGetPostUseCase(postRepo, appLogger)
	deletePostUseCase := postUC.NewDeletePostUseCase(postRepo, kafkaClient, appLogger)
	toggleLikeUseCase := postUC.NewToggleLikeUseCase(postRepo, kafkaClient, appLogger)
	commentUseCase := postUC.NewCommentUseCase(postRepo, userRepo, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, currentUserUseCase, updateAvatarUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, experienceUseCase, educationUseCase, deleteAccountUseCase, listReposUseCase)
	postHandler := httpAdapter.NewPostHandler(
		createPostUseCase,
		listPostsUseCase,
		getPostUseCase,
		deletePostUseCase,
		toggleLikeUseCase,
		commentUseCase,
	)

	router := httpAdapter.NewRouter(authHandler, profileHandler, postHandler, jwtSvc, appLogger)

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
