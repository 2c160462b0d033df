package bookings

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
	members := shared.RequireRoles(types.RoleSuperAdmin, types.RoleAdmin, types.RoleResident)

	amenities := router.Group("/amenities")
	amenities.GET("", controller.ListAmenities)
	amenities.GET("/:id", controller.GetAmenity)
	amenities.POST("", admin, controller.CreateAmenity)
	amenities.PUT("/:id", admin, controller.UpdateAmenity)
	amenities.DELETE("/:id", admin, controller.DeleteAmenity)

	bookings := router.Group("/bookings")
	bookings.POST("", members, controller.Create)
	bookings.GET("", controller.List)
	bookings.GET("/:id", controller.Get)
	bookings.PATCH("/:id/status", admin, controller.Decide)
	bookings.POST("/:id/cancel", members, controller.Cancel)
}
