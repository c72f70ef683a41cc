package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reservo/handlers"
	"reservo/middleware"
	"reservo/utils"
)

// RegisterChatRoutes registers the conversation endpoints. The widget token
// is optional here so a freshly embedded widget can bootstrap before it has
// fetched one.
func RegisterChatRoutes(r *gin.Engine, ch *handlers.ChatHandler) {
	api := r.Group("/api/chat")
	api.Use(middleware.WidgetAuthMiddleware(true))
	{
		api.GET("/services", ch.GetServices)
		api.POST("/message", ch.SendMessage)
		api.POST("/confirm", ch.ConfirmBooking)
	}
}

// RegisterTenantRoutes registers tenant settings and widget token issuance.
func RegisterTenantRoutes(r *gin.Engine, ch *handlers.ChatHandler) {
	api := r.Group("/api/tenant")
	{
		api.GET("/settings", middleware.WidgetAuthMiddleware(true), ch.GetTenantSettings)
		api.POST("/token", ch.IssueWidgetToken)
	}
}

// RegisterBookingRoutes registers the explicit booking endpoints. These
// require a valid widget token.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	api.Use(middleware.WidgetAuthMiddleware(false))
	{
		api.POST("", bh.CreateBooking)
		api.GET("/:id", bh.GetBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm Reservo",
			"backends": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ch *handlers.ChatHandler, bh *handlers.BookingHandler) {
	// Setup global middleware (e.g., CORS) here. The widget embeds on
	// arbitrary customer sites, so origins stay open.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterChatRoutes(r, ch)
	RegisterTenantRoutes(r, ch)
	RegisterBookingRoutes(r, bh)
	RegisterHealthRoute(r)
}
