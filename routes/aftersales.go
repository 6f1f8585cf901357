package routes

import (
	"campsite/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAftersalesRoutes registers the refund and reschedule flows. The two
// groups are structurally identical: request, validate, submit.
func RegisterAftersalesRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	refunds := r.Group("/api/refunds")
	{
		refunds.POST("/request", hb.Refund.Request)
		refunds.GET("/validate", hb.Refund.Validate)
		refunds.POST("", hb.Refund.Create)
	}

	reschedules := r.Group("/api/reschedules")
	{
		reschedules.POST("/request", hb.Reschedule.Request)
		reschedules.GET("/validate", hb.Reschedule.Validate)
		reschedules.POST("", hb.Reschedule.Create)
	}
}

// RegisterContentRoutes registers the peripheral content endpoints.
func RegisterContentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/articles", hb.Content.Articles)
}
