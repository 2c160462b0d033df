package residents

import (
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store) {
	controller := NewController(NewService(store))
	admin := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin)
	adminOrSelf := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleResident)

	group := router.Group("/residents")
	group.POST("", admin, controller.Create)
	group.GET("", admin, controller.List)
	group.GET("/:id", adminOrSelf, controller.Get)
	group.PUT("/:id", admin, controller.Update)
	group.DELETE("/:id", admin, controller.Delete)
	group.PATCH("/:id/status", admin, controller.SetStatus)
	group.GET("/:id/qr", adminOrSelf, controller.QRCode)
	group.POST("/:id/qr/rotate", adminOrSelf, controller.RotateQR)
}
