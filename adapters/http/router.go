package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nghiatran/devconnect/pkg/auth"
	"github.com/nghiatran/devconnect/pkg/logger"
)

// NewRouter wires the API surface. Auth-scoped groups sit behind the JWT
// middleware; profile reads stay public like the rest of the app expects.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	postHandler *PostHandler,
	jwtSvc *auth.JWTService,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	authMiddleware := AuthMiddleware(jwtSvc)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		users := api.Group("/users")
		{
			users.POST("", authHandler.Register)
			users.PUT("/avatar", authMiddleware, authHandler.UpdateAvatar)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("", authHandler.Login)
			authGroup.GET("", authMiddleware, authHandler.CurrentUser)
		}

		profiles := api.Group("/profile")
		{
			profiles.GET("", profileHandler.ListProfiles)
			profiles.GET("/user/:user_id", profileHandler.GetProfileByUserID)

			profiles.POST("", authMiddleware, profileHandler.UpsertProfile)
			profiles.GET("/me", authMiddleware, profileHandler.GetMyProfile)
			profiles.DELETE("", authMiddleware, profileHandler.DeleteAccount)
			profiles.PUT("/experience", authMiddleware, profileHandler.AddExperience)
			profiles.DELETE("/experience/:exp_id", authMiddleware, profileHandler.RemoveExperience)
			profiles.PUT("/education", authMiddleware, profileHandler.AddEducation)
			profiles.DELETE("/education/:edu_id", authMiddleware, profileHandler.RemoveEducation)
			profiles.GET("/github/:username", authMiddleware, profileHandler.ListGithubRepos)
		}

		posts := api.Group("/posts")
		posts.Use(authMiddleware)
		{
			posts.POST("", postHandler.CreatePost)
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:id", postHandler.GetPost)
			posts.DELETE("/:id", postHandler.DeletePost)
			posts.PUT("/like/:id", postHandler.ToggleLike)
			posts.POST("/:id/comment", postHandler.AddComment)
			posts.DELETE("/:id/comment/:comment_id", postHandler.RemoveComment)
		}
	}

	return router
}
