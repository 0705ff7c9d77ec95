package route

import (
	"cafehub/controller"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
)

func CafeRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/auth/register", controller.Register)
	api.POST("/auth/login", controller.Login)
	api.POST("/auth/refresh", controller.RefreshTokenFunc)

	api.GET("/cafes", controller.GetCafesByLocation)
	api.GET("/cafes/ranking", controller.GetCafesForRanking)
	api.GET("/cafes/:id", controller.GetCafeByID)
	api.POST("/contacts", controller.CreateContact)

	authed := api.Group("")
	authed.Use(utils.AuthMiddleware())
	{
		authed.POST("/cafes/:id/ratings", controller.SubmitRating)
		authed.POST("/cafes/:id/favorites", controller.AddFavorite)
		authed.DELETE("/cafes/:id/favorites", controller.RemoveFavorite)
		authed.POST("/cafes/:id/comments", controller.PostComment)

		authed.POST("/admin/cafes", controller.CreateCafe)
		authed.PUT("/admin/cafes/:id", controller.UpdateCafe)
		authed.DELETE("/admin/cafes/:id", controller.DeleteCafe)
		authed.POST("/admin/cafes/import", controller.BulkAddCafes)
		authed.GET("/admin/cafes/recent", controller.GetRecentCafes)
		authed.GET("/admin/contacts", controller.GetContacts)
		authed.POST("/admin/uploadImages", controller.UploadImages)
	}
}
