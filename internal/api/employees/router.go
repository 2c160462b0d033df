package employees

import (
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store) {
	controller := NewController(NewService(store))

	group := router.Group("/employees", shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin))
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.PUT("/:id", controller.Update)
	group.DELETE("/:id", controller.Delete)
	group.PATCH("/:id/status", controller.SetStatus)
	group.GET("/:id/qr", controller.QRCode)
	group.POST("/:id/qr/rotate", controller.RotateQR)
}
