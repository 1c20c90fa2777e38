package delivery

import (
	"catalog_service/internal/usecase"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	useCase usecase.CatalogUseCase
	log     *logrus.Logger

	// emptyCatalogStatus is the configured policy for an empty snapshot:
	// 200 returns it as a normal response, 503 tells consumer clients to
	// fall back to their local cache.
	emptyCatalogStatus int
}

func NewCatalogHandler(uc usecase.CatalogUseCase, emptyCatalogStatus int, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase:            uc,
		log:                logger,
		emptyCatalogStatus: emptyCatalogStatus,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/catalogo", h.GetCatalog)
	router.POST("/update_catalogo", h.UploadCatalog)
	catalogo := router.Group("/catalogo")
	{
		catalogo.GET("/:id", h.GetProduct)
		catalogo.POST("/add", h.AddProduct)
		catalogo.PUT("/edit/:id", h.EditProduct)
		catalogo.DELETE("/delete/:id", h.DeleteProduct)
	}
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	view, err := h.useCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get product by ID %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve product: "+err.Error())
		return
	}

	h.log.Infof("Product retrieved successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", view)
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	snapshot, err := h.useCase.GetCatalog(c.Request.Context())
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to read catalog: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve catalog: "+err.Error())
		return
	}

	if len(snapshot) == 0 && h.emptyCatalogStatus != http.StatusOK {
		h.log.Warnf("Catalog is empty, answering configured fallback status %d", h.emptyCatalogStatus)
		ErrorResponse(c, h.emptyCatalogStatus, "Catalog is empty")
		return
	}

	h.log.Infof("Catalog snapshot served with %d products", len(snapshot))
	SuccessResponse(c, http.StatusOK, "Catalog retrieved successfully", gin.H{
		"productos":   snapshot,
		"total":       len(snapshot),
		"generado_en": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *CatalogHandler) UploadCatalog(c *gin.Context) {
	var req usecase.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for catalog upload: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.useCase.ReconcileCatalog(c.Request.Context(), &req)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to reconcile catalog upload: %v", err)
		ErrorResponse(c, statusCode, "Failed to update catalog: "+err.Error())
		return
	}

	h.log.Infof("Catalog upload reconciled: %d matched, %d upserted, %d deleted",
		result.Matched, result.Upserted, result.Deleted)
	SuccessResponse(c, http.StatusOK, "Catalog updated successfully", result)
}

func (h *CatalogHandler) AddProduct(c *gin.Context) {
	var in usecase.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Errorf("Failed to bind JSON for product add: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := h.useCase.AddProduct(c.Request.Context(), in)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to add product '%s': %v", in.Name, err)
		ErrorResponse(c, statusCode, "Failed to add product: "+err.Error())
		return
	}

	h.log.Infof("Product added successfully: ID %s, Name %s", id, in.Name)
	SuccessResponse(c, http.StatusCreated, "Product added successfully", gin.H{"id": id})
}

func (h *CatalogHandler) EditProduct(c *gin.Context) {
	id := c.Param("id")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Errorf("Failed to bind JSON for product edit ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.EditProduct(c.Request.Context(), id, updates); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to edit product ID %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update product: "+err.Error())
		return
	}

	h.log.Infof("Product updated successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Product updated successfully", nil)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.RemoveProduct(c.Request.Context(), id); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to delete product ID %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to delete product: "+err.Error())
		return
	}

	h.log.Infof("Product deleted successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}
