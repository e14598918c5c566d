package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one line per request after it completes.
func AccessLog(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Printf("[%s] %s %s -> %d (%s)",
			ReqID(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}
