package customers

import (
	"github.com/gin-gonic/gin"
)

// SetupCustomerRoutes registers customer routes on protected and deletion on admin.
func SetupCustomerRoutes(protected *gin.RouterGroup, admin *gin.RouterGroup, controller Controller) {
	customers := protected.Group("/customers")
	{
		customers.GET("", controller.GetAllCustomers)
		customers.POST("", controller.CreateCustomer)
		customers.GET("/:id", controller.GetCustomer)
		customers.PUT("/:id", controller.UpdateCustomer)

		// History and recommendations
		customers.GET("/:id/history", controller.GetHistory)                 // GET /api/v1/customers/:id/history
		customers.POST("/:id/history", controller.AddToHistory)              // POST /api/v1/customers/:id/history
		customers.GET("/:id/watched", controller.GetWatchedMovies)           // GET /api/v1/customers/:id/watched
		customers.GET("/:id/recommendations", controller.GetRecommendations) // GET /api/v1/customers/:id/recommendations
	}

	adminCustomers := admin.Group("/customers")
	{
		adminCustomers.DELETE("/:id", controller.DeleteCustomer) // DELETE /api/v1/admin/customers/:id
	}
}
