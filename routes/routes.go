package routes

import (
	"net/http"
	"time"

	"campsite/handlers"
	"campsite/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterReservationRoutes registers the booking flow endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	reservations := r.Group("/api/reservations")
	{
		reservations.GET("/availability", hb.Availability.Search)
		reservations.POST("/price", hb.Availability.CheckPrice)

		reservations.GET("/session", hb.Reservation.GetSession)
		reservations.PUT("/session/selection", hb.Reservation.Select)
		reservations.PUT("/session/personal-info", hb.Reservation.SubmitPersonalInfo)
		reservations.DELETE("/session", hb.Reservation.ClearSession)

		reservations.POST("", hb.Reservation.Create)
		reservations.GET("/:bookingID/invoice", hb.Content.Invoice)
	}
}

// RegisterPaymentRoutes registers the payment step endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	payments := r.Group("/api/payments")
	{
		payments.DELETE("/polling", hb.Payment.StopPolling)
		payments.POST("/:bookingID", hb.Payment.Create)
		payments.GET("/:bookingID", hb.Payment.Status)
	}
}

// RegisterHealthRoute exposes the dependency health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterReservationRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAftersalesRoutes(r, hb)
	RegisterContentRoutes(r, hb)
	RegisterHealthRoute(r)
}
