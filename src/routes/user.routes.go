package routes

import (
	"github.com/gin-gonic/gin"

	"mingle.app/config"
	"mingle.app/src/handlers"
	"mingle.app/src/store"
)

func SetupUserRoutes(r *gin.Engine) {
	userHandler := handlers.NewUserHandler(store.NewUserStore(config.GetCollection("users")))

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.GetAll)
			users.GET("/count", userHandler.Count)
			users.GET("/stats", userHandler.AgeStats)
			users.GET("/:id", userHandler.GetByID)
			users.GET("/:id/posts", userHandler.GetWithPosts)
			users.PATCH("/:id", userHandler.Patch)
			users.DELETE("/:id", userHandler.Delete)
		}
	}
}
