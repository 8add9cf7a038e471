package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	portssvc "github.com/vendorfx/vendor_fx_app/internal/core/ports/services"
	"github.com/vendorfx/vendor_fx_app/internal/dto"
	"github.com/vendorfx/vendor_fx_app/internal/middleware"
)

// conversionHandler exposes the price-conversion decision engine to the
// integration layer (catalog importers and the platform's write hooks).
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// registerConversionRoutes registers the conversion endpoints.
func registerConversionRoutes(rg *gin.RouterGroup, cs portssvc.ConversionSvcFacade) {
	h := newConversionHandler(cs)

	products := rg.Group("/products")
	{
		products.POST("/convert", h.convertIncoming)
		products.POST("/:id/reconcile", h.reconcileProduct)
	}
}

// convertIncoming transforms proposed vendor-currency prices into the base
// currency before the caller persists them. The caller applies the returned
// draft; nothing is saved here.
func (h *conversionHandler) convertIncoming(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertIncomingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertIncoming", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	draft := domain.Product{
		ProductID: req.ProductID,
		VendorID:  req.VendorID,
		ParentID:  req.ParentID,
	}

	converted, err := h.conversionService.ConvertIncoming(c.Request.Context(), draft, req.VendorID, req.RegularPrice, req.SalePrice)
	if err != nil {
		logger.Error("Failed to convert incoming prices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert prices"})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertedProductResponse{Product: converted})
}

// reconcileProduct runs the reconcile pass for an already-persisted product.
// A product with nothing to convert yields the same 204 as one that was
// converted and saved; the engine surfaces no distinction.
func (h *conversionHandler) reconcileProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.conversionService.ReconcileProduct(c.Request.Context(), c.Param("id")); err != nil {
		logger.Error("Failed to reconcile product", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile product"})
		return
	}

	c.Status(http.StatusNoContent)
}
