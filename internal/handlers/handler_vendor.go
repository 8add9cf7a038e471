package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	portssvc "github.com/vendorfx/vendor_fx_app/internal/core/ports/services"
	"github.com/vendorfx/vendor_fx_app/internal/dto"
	"github.com/vendorfx/vendor_fx_app/internal/middleware"
)

// vendorHandler handles HTTP requests related to vendor currency settings.
type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

// newVendorHandler creates a new vendorHandler.
func newVendorHandler(vs portssvc.VendorSvcFacade) *vendorHandler {
	return &vendorHandler{vendorService: vs}
}

// registerVendorRoutes registers routes related to vendor currency settings.
func registerVendorRoutes(rg *gin.RouterGroup, vs portssvc.VendorSvcFacade) {
	h := newVendorHandler(vs)

	vendors := rg.Group("/vendors")
	{
		vendors.GET("/:id/currency", h.getVendorCurrency)
		vendors.PUT("/:id/currency", h.setVendorCurrency)
	}
}

// getVendorCurrency returns the currency a vendor prices in. Vendors without
// a setting resolve to the base currency, so this never 404s.
func (h *vendorHandler) getVendorCurrency(c *gin.Context) {
	vendorID := c.Param("id")

	code := h.vendorService.GetCurrency(c.Request.Context(), vendorID)

	c.JSON(http.StatusOK, dto.VendorCurrencyResponse{
		VendorID:     vendorID,
		CurrencyCode: code,
	})
}

// setVendorCurrency stores a vendor's currency. Codes outside the allowed set
// are stored as the base currency rather than rejected.
func (h *vendorHandler) setVendorCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetVendorCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetVendorCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater subject not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	setting, err := h.vendorService.SetCurrency(c.Request.Context(), c.Param("id"), req.CurrencyCode, updaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set vendor currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set vendor currency"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVendorCurrencyResponse(setting))
}
