package delivery

import (
	"catalog_service/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdvertisementHandler struct {
	useCase usecase.AdvertisementUseCase
	log     *logrus.Logger
}

func NewAdvertisementHandler(uc usecase.AdvertisementUseCase, logger *logrus.Logger) *AdvertisementHandler {
	return &AdvertisementHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AdvertisementHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/advertisement", h.GetAdvertisement)
}

// GetAdvertisement always answers 200: a missing or unreadable banner is the
// inactive default, never an error.
func (h *AdvertisementHandler) GetAdvertisement(c *gin.Context) {
	ad := h.useCase.GetAdvertisement(c.Request.Context())
	h.log.Infof("Advertisement served (active=%t)", ad.Active)
	SuccessResponse(c, http.StatusOK, "Advertisement retrieved successfully", ad)
}
