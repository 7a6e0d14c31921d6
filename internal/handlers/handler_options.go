package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RegisterOptionsRoutes registers the entry form options route.
func RegisterOptionsRoutes(rg *gin.RouterGroup, now func() time.Time) {
	rg.GET("/options", func(c *gin.Context) { getOptions(c, now) })
}

// getOptions godoc
// @Summary Entry form choices
// @Description Set names, numbered/parallel choices and card years for a sport
// @Tags options
// @Produce  json
// @Param   sport query string false "baseball or football" default(baseball)
// @Success 200 {object} domain.EntryOptions
// @Router /options [get]
func getOptions(c *gin.Context, now func() time.Time) {
	sport := domain.Sport(c.DefaultQuery("sport", string(domain.SportBaseball)))
	c.JSON(http.StatusOK, domain.OptionsFor(sport, now()))
}
