package dashboard

import (
	"github.com/Conversly/community-api/internal/config"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *queries.Store, cfg *config.Config) {
	controller := NewController(NewService(store, cfg.Location))

	group := router.Group("/dashboard")
	group.GET("", shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin), controller.Admin)
	group.GET("/me", shared.RequireRoles(types.RoleResident), controller.Resident)
}
