package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// requestLogger writes one entry per request. Successful requests log at
// debug, client errors at warn and server errors at error. An error a
// handler attached with AbortWithError is carried on the entry.
func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"status":   status,
			"route":    route,
			"query":    c.Request.URL.RawQuery,
			"duration": time.Since(start).Round(time.Microsecond).String(),
			"bytes":    c.Writer.Size(),
		})
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			entry = entry.WithError(errs.Last())
		}

		msg := c.Request.Method + " " + route
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error(msg)
		case status >= http.StatusBadRequest:
			entry.Warn(msg)
		default:
			entry.Debug(msg)
		}
	}
}
