package genres

import (
	"github.com/gin-gonic/gin"
)

// SetupGenreRoutes registers public reads on rg and writes on admin.
func SetupGenreRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, controller Controller) {
	public := rg.Group("/genres")
	{
		public.GET("", controller.GetAllGenres)              // GET /api/v1/genres
		public.GET("/:id", controller.GetGenre)              // GET /api/v1/genres/:id
		public.GET("/slug/:slug", controller.GetGenreBySlug) // GET /api/v1/genres/slug/:slug
	}

	adminGenres := admin.Group("/genres")
	{
		adminGenres.POST("", controller.CreateGenre)       // POST /api/v1/admin/genres
		adminGenres.PUT("/:id", controller.UpdateGenre)    // PUT /api/v1/admin/genres/:id
		adminGenres.DELETE("/:id", controller.DeleteGenre) // DELETE /api/v1/admin/genres/:id
	}
}
