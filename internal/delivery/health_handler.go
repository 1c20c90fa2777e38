package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/ping", h.Ping)
	router.GET("/", h.Ping)
}

// Ping never touches the store: the liveness probe must keep answering even
// when the catalog backend is down.
func (h *HealthHandler) Ping(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "SERVER ACTIVO", gin.H{"status": "OK"})
}
