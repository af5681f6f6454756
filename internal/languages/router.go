package languages

import "github.com/gin-gonic/gin"

func SetupLanguageRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/languages")
	{
		public.GET("", controller.List)
		public.GET("/:id", controller.Get)
	}

	adminLanguages := admin.Group("/languages")
	{
		adminLanguages.POST("", controller.Create)
		adminLanguages.PUT("/:id", controller.Update)
		adminLanguages.DELETE("/:id", controller.Delete)
	}
}
