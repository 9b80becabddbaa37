package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type homeHandler struct{}

func newHomeHandler() *homeHandler {
	return &homeHandler{}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *homeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
