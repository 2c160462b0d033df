package bills

import (
	"github.com/Conversly/community-api/internal/config"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store, cfg *config.Config) {
	controller := NewController(NewService(store, cfg.Location))
	admin := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin)

	group := router.Group("/bills", shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleResident))
	group.POST("/generate", admin, controller.Generate)
	group.GET("/summary", controller.Summary)
	group.POST("", admin, controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.DELETE("/:id", admin, controller.Delete)
	group.POST("/:id/pay", admin, controller.Pay)
}
