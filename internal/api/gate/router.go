package gate

import (
	"github.com/Conversly/community-api/internal/config"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store, cfg *config.Config) {
	controller := NewController(NewService(store, cfg.Location))

	group := router.Group("/gate", shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleSecurity))
	group.POST("/scan", controller.Scan)
	group.POST("/manual", controller.Manual)
	group.GET("/entries", controller.Entries)
	group.GET("/inside", controller.Inside)
}
