package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleHealthCheck godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func handleHealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
