package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func (app *application) routes() http.Handler {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(app.recoverPanic(), app.logRequest())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.NoRoute(func(c *gin.Context) {
		app.notFoundResponse(c, "The requested resource could not be found.")
	})
	router.NoMethod(app.methodNotAllowedResponse)

	api := router.Group("/api")
	{
		api.GET("/health", app.healthCheck)

		articles := api.Group("/articles")
		{
			articles.POST("", app.createArticle)
			articles.GET("", app.getArticles)

			articles.POST("/tags", app.createTag)
			articles.GET("/tags", app.getTags)
			articles.PATCH("/tags/:id", app.updateTag)
			articles.DELETE("/tags/:id", app.deleteTag)

			articles.GET("/:id", app.getArticle)
			articles.PATCH("/:id", app.updateArticle)
			articles.DELETE("/:id", app.deleteArticle)

			articles.POST("/:id/comments", app.createComment)
			articles.GET("/:id/comments", app.getComments)
			articles.PATCH("/:id/comments/:commentId", app.updateComment)
			articles.DELETE("/:id/comments/:commentId", app.deleteComment)

			articles.POST("/:id/tag", app.pushTag)
			articles.DELETE("/:id/tag/:tagId", app.removeTag)
		}

		users := api.Group("/users")
		{
			users.GET("", app.getUsers)
			users.POST("", app.createUser)
			users.GET("/:id", app.getUser)
			users.PATCH("/:id", app.updateUser)
			users.DELETE("/:id", app.deleteUser)
		}
	}

	return otelhttp.NewHandler(router, "blog-api")
}
