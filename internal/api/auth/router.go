package auth

import (
	"github.com/Conversly/community-api/internal/config"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public credential endpoints behind a per-IP
// limiter and the account endpoints behind authenticate.
func RegisterRoutes(router *gin.RouterGroup, store *queries.Store, cfg *config.Config, tokens *shared.TokenManager, authenticate gin.HandlerFunc) {
	controller := NewController(NewService(store, tokens))
	limiter := shared.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)

	group := router.Group("/auth")
	public := group.Group("", limiter.Handler())
	public.POST("/register", controller.Register)
	public.POST("/login", controller.Login)
	public.POST("/refresh", controller.Refresh)

	group.GET("/me", authenticate, controller.Me)
	group.PUT("/password", authenticate, controller.ChangePassword)
}
