package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := app.health.Ping(ctx); err != nil {
		app.serviceUnavailableResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"repository": app.config.Repository.Type,
	})
}
