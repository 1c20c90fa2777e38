package delivery

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ImageHandler struct {
	imageDir string
	log      *logrus.Logger
}

func NewImageHandler(imageDir string, logger *logrus.Logger) *ImageHandler {
	return &ImageHandler{
		imageDir: imageDir,
		log:      logger,
	}
}

func (h *ImageHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/images/:filename", h.ServeImage)
}

// ServeImage looks the file up case-insensitively: uploads lowercase the
// stored image reference while the files on disk may keep their original
// casing.
func (h *ImageHandler) ServeImage(c *gin.Context) {
	name := c.Param("filename")
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		h.log.Warnf("Rejected suspicious image path %q", name)
		ErrorResponse(c, http.StatusNotFound, "Image not found")
		return
	}

	entries, err := os.ReadDir(h.imageDir)
	if err != nil {
		h.log.Errorf("Failed to read image directory %s: %v", h.imageDir, err)
		ErrorResponse(c, http.StatusNotFound, "Image not found")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), name) {
			c.File(filepath.Join(h.imageDir, entry.Name()))
			return
		}
	}

	h.log.Warnf("Image %q not found in %s", name, h.imageDir)
	ErrorResponse(c, http.StatusNotFound, "Image not found")
}
