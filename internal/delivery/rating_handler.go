package delivery

import (
	"catalog_service/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RatingHandler struct {
	useCase usecase.RatingUseCase
	log     *logrus.Logger
}

func NewRatingHandler(uc usecase.RatingUseCase, logger *logrus.Logger) *RatingHandler {
	return &RatingHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *RatingHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/rate", h.RateProduct)
}

type rateRequest struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

func (h *RatingHandler) RateProduct(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for rating: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	count, err := h.useCase.RateProduct(c.Request.Context(), req.ID, req.Kind)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to rate product ID %s (%s): %v", req.ID, req.Kind, err)
		ErrorResponse(c, statusCode, "Failed to rate product: "+err.Error())
		return
	}

	h.log.Infof("Product ID %s rated %s, counter now %d", req.ID, req.Kind, count)
	SuccessResponse(c, http.StatusOK, "Product rated successfully", gin.H{
		"id":    req.ID,
		"kind":  req.Kind,
		"count": count,
	})
}
