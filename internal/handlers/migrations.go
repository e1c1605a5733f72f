package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/gridstore/network-store/api/v1"
)

// ListMigrationUnits returns the known migration units
// (GET /admin/migrations)
func (h *Handler) ListMigrationUnits(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewMigrationUnitsFromModel(h.migrationSrv.Units()))
}

// MigrateVariant runs one migration unit on one variant
// (POST /admin/migrations/{unit}/networks/{networkId}/variants/{variantNum})
func (h *Handler) MigrateVariant(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	report, err := h.migrationSrv.Migrate(c.Request.Context(), c.Param("unit"), id, num)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewMigrationReportFromModel(report))
}

// MigrateNetwork runs one migration unit on every variant of a network
// (POST /admin/migrations/{unit}/networks/{networkId})
func (h *Handler) MigrateNetwork(c *gin.Context) {
	id, err := networkID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	reports, err := h.migrationSrv.MigrateNetwork(c.Request.Context(), c.Param("unit"), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewMigrationReportsFromModel(reports))
}
