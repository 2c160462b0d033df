package vehicles

import (
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store) {
	controller := NewController(NewService(store))
	owners := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleResident)
	staff := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleSecurity)

	group := router.Group("/vehicles")
	group.POST("", owners, controller.Create)
	group.GET("", owners, controller.List)
	group.GET("/lookup/:number", staff, controller.Lookup)
	group.GET("/:id", owners, controller.Get)
	group.PUT("/:id", owners, controller.Update)
	group.DELETE("/:id", owners, controller.Delete)
}
