package routes

import (
	"github.com/gin-gonic/gin"

	"mingle.app/config"
	"mingle.app/src/handlers"
	"mingle.app/src/store"
)

func SetupPostRoutes(r *gin.Engine) {
	postHandler := handlers.NewPostHandler(store.NewPostStore(config.DB))

	api := r.Group("/api/v1")
	{
		posts := api.Group("/posts")
		{
			posts.POST("", postHandler.Create)
			posts.GET("", postHandler.GetByAuthor)
			posts.GET("/:id", postHandler.GetByID)
			posts.DELETE("/:id", postHandler.Delete)
		}
	}
}
