package deliveries

import (
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store) {
	controller := NewController(NewService(store))
	staff := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleSecurity)

	group := router.Group("/deliveries")
	group.POST("", staff, controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.PATCH("/:id/status", controller.SetStatus)
}
