package main

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"
)

func (app *application) recoverPanic() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.Header("Connection", "close")
		app.internalErrorResponse(c, xerrors.Newf("panic: %v", recovered))
	})
}

func (app *application) logRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		app.logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "Request handled",
			slog.String("request_method", c.Request.Method),
			slog.String("request_url", c.Request.URL.String()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
