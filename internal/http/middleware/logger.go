package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request: request id, outcome, bytes written.
// The last handler error, if any, is appended so failed requests can be
// traced without a second lookup.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		errMsg := ""
		if last := c.Errors.Last(); last != nil {
			errMsg = " err=" + last.Error()
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f bytes=%d ip=%s%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.Writer.Size(),
			c.ClientIP(),
			errMsg,
		)
	}
}
