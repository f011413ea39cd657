package request

import (
	"hr-portal/internal/middleware"
	"hr-portal/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	gate *session.Gate,
	rdb *redis.Client,
) {
	requests := r.Group("/requests/:kind")
	{
		requests.GET("", gate.Require(session.ResourceRequests, session.ActionRead, session.ModeAPI), handler.List)
		requests.GET("/:id", gate.Require(session.ResourceRequests, session.ActionRead, session.ModeAPI), handler.GetByID)
		requests.POST(
			"",
			gate.Require(session.ResourceRequests, session.ActionCreate, session.ModeAPI),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.PUT(
			"/:id",
			gate.Require(session.ResourceRequests, session.ActionApprove, session.ModeAPI),
			middleware.RateLimitByUser(rate.Limit(5), 10),
			handler.Transition,
		)
	}
}
