package announcements

import (
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store) {
	controller := NewController(NewService(store))
	admin := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin)

	group := router.Group("/announcements")
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.POST("", admin, controller.Create)
	group.PUT("/:id", admin, controller.Update)
	group.DELETE("/:id", admin, controller.Delete)
}
