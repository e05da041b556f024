package middleware

import (
	"time"

	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger логирует каждый запрос. Уровень зависит от кода ответа.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}

		c.Next()

		statusCode := c.Writer.Status()
		kv := []any{
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", path,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		// Ошибки, добавленные обработчиками через c.Error
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			kv = append(kv, "errors", errs)
		}

		switch {
		case statusCode >= 500:
			log.Errorw("Request failed", kv...)
		case statusCode >= 400:
			log.Warnw("Request rejected", kv...)
		default:
			log.Infow("Request handled", kv...)
		}
	}
}
