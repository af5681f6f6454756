package movies

import "github.com/gin-gonic/gin"

func SetupMovieRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, controller Controller) {
	public := rg.Group("/movies")
	{
		public.GET("", controller.GetAllMovies)        // GET /api/v1/movies?page=&limit=
		public.GET("/week", controller.GetWeekMovies)  // GET /api/v1/movies/week
		public.GET("/search", controller.SearchMovies) // GET /api/v1/movies/search?title=&genre=
		public.GET("/:id", controller.GetMovie)        // GET /api/v1/movies/:id
	}

	adminMovies := admin.Group("/movies")
	{
		adminMovies.POST("", controller.CreateMovie)
		adminMovies.PUT("/:id", controller.UpdateMovie)
		adminMovies.DELETE("/:id", controller.DeleteMovie)
	}
}
