package communities

import (
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the platform endpoints. router must already run Authenticate.
func RegisterRoutes(router *gin.RouterGroup, store *queries.Store) {
	controller := NewController(NewService(store))

	group := router.Group("/communities", shared.RequireRoles(types.RoleSuperAdmin))
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.PUT("/:id", controller.Update)
	group.PATCH("/:id/status", controller.SetStatus)
	group.POST("/:id/admins", controller.CreateAdmin)
}
