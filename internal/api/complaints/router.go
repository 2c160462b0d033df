package complaints

import (
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store) {
	controller := NewController(NewService(store))

	group := router.Group("/complaints")
	group.POST("", shared.RequireRoles(types.RoleResident), controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.PATCH("/:id/status", shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleResident), controller.SetStatus)
	group.PATCH("/:id/assign", shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin), controller.Assign)
	group.POST("/:id/comments", controller.Comment)
}
