package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/gridstore/network-store/api/v1"
	"github.com/gridstore/network-store/internal/migration"
	"github.com/gridstore/network-store/internal/services"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

type Handler struct {
	networkSrv   *services.NetworkService
	migrationSrv *services.MigrationService
}

func New(networkSrv *services.NetworkService, migrationSrv *services.MigrationService) *Handler {
	return &Handler{
		networkSrv:   networkSrv,
		migrationSrv: migrationSrv,
	}
}

// RegisterHandlers mounts the routes on router. admin middlewares guard the migration routes.
func RegisterHandlers(router gin.IRouter, h *Handler, admin ...gin.HandlerFunc) {
	networks := router.Group("/networks")
	networks.POST("", h.CreateNetwork)
	networks.DELETE("/:networkId", h.DeleteNetwork)
	networks.GET("/:networkId/variants", h.ListVariants)
	networks.POST("/:networkId/variants", h.CloneVariant)
	networks.DELETE("/:networkId/variants/:variantNum", h.DeleteVariant)

	equipment := networks.Group("/:networkId/variants/:variantNum/equipment/:equipmentId")
	equipment.GET("", h.GetAttributes)
	equipment.PUT("", h.PutAttributes)
	equipment.DELETE("", h.RemoveEquipment)
	equipment.GET("/limits", h.GetLimits)
	equipment.PUT("/limits", h.PutLimits)
	equipment.GET("/tap-changers/:type/steps", h.GetTapChangerSteps)
	equipment.PUT("/tap-changers/:type/steps", h.PutTapChangerSteps)

	migrations := router.Group("/admin/migrations", admin...)
	migrations.GET("", h.ListMigrationUnits)
	migrations.POST("/:unit/networks/:networkId", h.MigrateNetwork)
	migrations.POST("/:unit/networks/:networkId/variants/:variantNum", h.MigrateVariant)
}

// renderError writes the error envelope with the status matching err.
func renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case srvErrors.IsInvalidArgumentError(err):
		status = http.StatusBadRequest
	case srvErrors.IsResourceNotFoundError(err):
		status = http.StatusNotFound
	case srvErrors.IsInvalidOperationError(err), srvErrors.IsResourceExistsError(err):
		status = http.StatusConflict
	}

	log := zap.S().Named("handler")
	var migErr *migration.MigrationError
	if status >= http.StatusInternalServerError {
		if errors.As(err, &migErr) {
			log.Errorw("migration failed", "path", c.Request.URL.Path, "unit", migErr.Unit, "variant_num", migErr.VariantNum, "error", err)
		} else {
			log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
		}
	} else {
		log.Debugw("request rejected", "path", c.Request.URL.Path, "status", status, "error", err)
	}

	c.AbortWithStatusJSON(status, v1.Error{
		Status:  status,
		Error:   http.StatusText(status),
		Message: err.Error(),
		Path:    c.Request.URL.Path,
	})
}

func networkID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("networkId"))
	if err != nil {
		return uuid.Nil, srvErrors.NewInvalidArgumentError("invalid network id %q", c.Param("networkId"))
	}
	return id, nil
}

func variantNum(c *gin.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("variantNum"))
	if err != nil || n < 0 {
		return 0, srvErrors.NewInvalidArgumentError("invalid variant number %q", c.Param("variantNum"))
	}
	return n, nil
}

// scope parses the network id and the variant number of the path.
func scope(c *gin.Context) (uuid.UUID, int, error) {
	id, err := networkID(c)
	if err != nil {
		return uuid.Nil, 0, err
	}
	n, err := variantNum(c)
	if err != nil {
		return uuid.Nil, 0, err
	}
	return id, n, nil
}

func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return srvErrors.NewInvalidArgumentError("invalid request body: %v", err)
	}
	return nil
}
