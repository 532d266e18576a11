package handler

import (
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.authSignUp)
			auth.POST("/signin", h.authSignIn)
			auth.POST("/signout", h.authMiddleware, h.authSignOut)
			auth.POST("/refresh", h.authRefresh)
		}

		users := v1.Group("/users")
		{
			users.GET("/@me", h.authMiddleware, h.usersGetMe)
			users.PATCH("/@me", h.authMiddleware, h.usersUpdateMe)
			users.GET("/:userID", h.usersGetByID)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("", h.postsGetAll)
			posts.GET("/author/:userID", h.postsGetByAuthor)
			posts.PATCH("/edit", h.authMiddleware, h.postsEdit)

			post := posts.Group("/:postID")
			{
				post.GET("", h.postsGetByID)
				post.DELETE("", h.authMiddleware, h.postsDelete)
			}
		}
	}

	return r
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}
