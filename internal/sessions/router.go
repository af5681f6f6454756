package sessions

import (
	"github.com/gin-gonic/gin"
)

// SetupSessionRoutes registers public reads on rg and writes on admin.
func SetupSessionRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, controller Controller) {
	public := rg.Group("/sessions")
	{
		public.GET("", controller.GetAllSessions)         // GET /api/v1/sessions?movie_id=
		public.GET("/:id", controller.GetSession)         // GET /api/v1/sessions/:id
		public.GET("/:id/seats", controller.SuggestSeats) // GET /api/v1/sessions/:id/seats?numOfTickets=N
		public.GET("/:id/seatmap", controller.GetSeatMap) // GET /api/v1/sessions/:id/seatmap
	}

	adminSessions := admin.Group("/sessions")
	{
		adminSessions.POST("", controller.CreateSession)               // POST /api/v1/admin/sessions
		adminSessions.PUT("/:id", controller.UpdateSession)            // PUT /api/v1/admin/sessions/:id
		adminSessions.DELETE("/:id", controller.DeleteSession)         // DELETE /api/v1/admin/sessions/:id
		adminSessions.PUT("/:id/occupied", controller.UpdateOccupancy) // PUT /api/v1/admin/sessions/:id/occupied
	}
}
