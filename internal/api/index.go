package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Conversly/community-api/internal/api/announcements"
	"github.com/Conversly/community-api/internal/api/auth"
	"github.com/Conversly/community-api/internal/api/bills"
	"github.com/Conversly/community-api/internal/api/bookings"
	"github.com/Conversly/community-api/internal/api/communities"
	"github.com/Conversly/community-api/internal/api/complaints"
	"github.com/Conversly/community-api/internal/api/dashboard"
	"github.com/Conversly/community-api/internal/api/deliveries"
	"github.com/Conversly/community-api/internal/api/employees"
	"github.com/Conversly/community-api/internal/api/gate"
	"github.com/Conversly/community-api/internal/api/guests"
	"github.com/Conversly/community-api/internal/api/providers"
	"github.com/Conversly/community-api/internal/api/residents"
	"github.com/Conversly/community-api/internal/api/vehicles"
	"github.com/Conversly/community-api/internal/config"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers every feature router on the engine.
func RegisterRoutes(engine *gin.Engine, store *queries.Store, cfg *config.Config, tokens *shared.TokenManager) {
	engine.Use(
		gin.Recovery(),
		shared.RequestID(),
		shared.RequestLogger(),
		shared.CORS(cfg.AllowedOrigins),
		shared.Metrics(),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			utils.RespondError(c, utils.NewAPIError(http.StatusServiceUnavailable, "database unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	engine.GET("/metrics", gin.WrapH(shared.MetricsHandler()))

	authenticate := shared.Authenticate(tokens, store)
	v1 := engine.Group("/api/v1")

	auth.RegisterRoutes(v1, store, cfg, tokens, authenticate)

	platform := v1.Group("", authenticate)
	communities.RegisterRoutes(platform, store)

	tenant := v1.Group("", authenticate, shared.TenantScope())
	residents.RegisterRoutes(tenant, store)
	employees.RegisterRoutes(tenant, store)
	providers.RegisterRoutes(tenant, store)
	vehicles.RegisterRoutes(tenant, store)
	guests.RegisterRoutes(tenant, store, cfg)
	deliveries.RegisterRoutes(tenant, store)
	gate.RegisterRoutes(tenant, store, cfg)
	complaints.RegisterRoutes(tenant, store)
	bookings.RegisterRoutes(tenant, store, cfg)
	bills.RegisterRoutes(tenant, store, cfg)
	announcements.RegisterRoutes(tenant, store)
	dashboard.RegisterRoutes(tenant, store, cfg)
}
