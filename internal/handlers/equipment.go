package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/gridstore/network-store/api/v1"
	"github.com/gridstore/network-store/internal/models"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// GetAttributes returns the equipment as seen from the variant
// (GET /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId})
func (h *Handler) GetAttributes(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	eq, err := h.networkSrv.GetAttributes(c.Request.Context(), id, num, c.Param("equipmentId"), models.EquipmentType(c.Query("type")))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewEquipmentFromModel(*eq))
}

// PutAttributes writes the equipment in the variant
// (PUT /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId})
func (h *Handler) PutAttributes(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	var req v1.Equipment
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	if err := h.networkSrv.PutAttributes(c.Request.Context(), id, num, req.ToModel(c.Param("equipmentId"))); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveEquipment removes the equipment and the switches left dangling
// (DELETE /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId})
func (h *Handler) RemoveEquipment(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	events, err := h.networkSrv.RemoveEquipment(c.Request.Context(), id, num, c.Param("equipmentId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewRemovalEventsFromModel(events))
}

// GetLimits returns the operational limits groups of the equipment
// (GET /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId}/limits)
func (h *Handler) GetLimits(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	equipmentID := c.Param("equipmentId")
	groups, err := h.networkSrv.GetLimits(c.Request.Context(), id, num, equipmentID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewLimitsFromModel(equipmentID, groups))
}

// PutLimits replaces the operational limits groups of the equipment
// (PUT /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId}/limits)
func (h *Handler) PutLimits(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	var req v1.Limits
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	equipmentID := c.Param("equipmentId")
	if err := h.networkSrv.PutLimits(c.Request.Context(), id, num, equipmentID, req.ToModel(equipmentID)); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func tapChangerType(c *gin.Context) (models.TapChangerType, error) {
	t, ok := models.ParseTapChangerType(c.Param("type"))
	if !ok {
		return "", srvErrors.NewInvalidArgumentError("unknown tap changer type %q", c.Param("type"))
	}
	return t, nil
}

// GetTapChangerSteps returns the steps of one tap changer of the equipment
// (GET /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId}/tap-changers/{type}/steps)
func (h *Handler) GetTapChangerSteps(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	tcType, err := tapChangerType(c)
	if err != nil {
		renderError(c, err)
		return
	}
	tc, err := h.networkSrv.GetTapChangerSteps(c.Request.Context(), id, num, c.Param("equipmentId"), tcType)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewTapChangerStepsFromModel(*tc))
}

// PutTapChangerSteps replaces the steps of one tap changer of the equipment
// (PUT /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId}/tap-changers/{type}/steps)
func (h *Handler) PutTapChangerSteps(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	tcType, err := tapChangerType(c)
	if err != nil {
		renderError(c, err)
		return
	}
	var req v1.TapChangerSteps
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	if err := h.networkSrv.PutTapChangerSteps(c.Request.Context(), id, num, req.ToModel(c.Param("equipmentId"), tcType)); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
