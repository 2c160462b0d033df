package guests

import (
	"github.com/Conversly/community-api/internal/config"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store, cfg *config.Config) {
	controller := NewController(NewService(store, cfg.Location))
	hosts := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleResident)
	staff := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleSecurity)

	group := router.Group("/guests")
	group.POST("", hosts, controller.Create)
	group.POST("/walk-in", staff, controller.WalkIn)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.GET("/:id/qr", controller.QRCode)
	group.POST("/:id/cancel", hosts, controller.Cancel)
}
