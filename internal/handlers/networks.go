package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/gridstore/network-store/api/v1"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// CreateNetwork registers a network and its initial variant
// (POST /networks)
func (h *Handler) CreateNetwork(c *gin.Context) {
	var req v1.CreateNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		renderError(c, srvErrors.NewInvalidArgumentError("invalid request body: %v", err))
		return
	}
	id := uuid.New()
	if req.NetworkID != nil {
		id = *req.NetworkID
	}

	variant, err := h.networkSrv.CreateNetwork(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v1.NewVariantFromModel(*variant))
}

// DeleteNetwork removes a network with all its variants
// (DELETE /networks/{networkId})
func (h *Handler) DeleteNetwork(c *gin.Context) {
	id, err := networkID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.networkSrv.DeleteNetwork(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListVariants returns the variants of a network
// (GET /networks/{networkId}/variants)
func (h *Handler) ListVariants(c *gin.Context) {
	id, err := networkID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	variants, err := h.networkSrv.ListVariants(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	resp := make([]v1.Variant, 0, len(variants))
	for _, v := range variants {
		resp = append(resp, v1.NewVariantFromModel(v))
	}
	c.JSON(http.StatusOK, resp)
}

// CloneVariant creates a variant from an existing one
// (POST /networks/{networkId}/variants)
func (h *Handler) CloneVariant(c *gin.Context) {
	id, err := networkID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	var req v1.CloneVariantRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}

	variant, err := h.networkSrv.CloneVariant(c.Request.Context(), id, req.SourceVariantNum, req.VariantNum, req.VariantID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v1.NewVariantFromModel(*variant))
}

// DeleteVariant removes a variant other than the initial one
// (DELETE /networks/{networkId}/variants/{variantNum})
func (h *Handler) DeleteVariant(c *gin.Context) {
	id, num, err := scope(c)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.networkSrv.DeleteVariant(c.Request.Context(), id, num); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
