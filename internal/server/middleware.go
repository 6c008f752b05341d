package server

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cipherloom-go/internal/auth"
	"github.com/cipherloom-go/internal/errors"
	"github.com/cipherloom-go/internal/handler"
	"github.com/cipherloom-go/internal/metrics"
	"github.com/cipherloom-go/internal/trace"
)

// TraceMiddleware adds request tracing context to each request
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = trace.GenerateRequestID()
		}
		routeTag := trace.ExtractRouteTag(c.Request.URL.Path)

		ctx := trace.WithRequestID(c.Request.Context(), reqID)
		ctx = trace.WithRouteTag(ctx, routeTag)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

// RecoveryMiddleware turns a panic into a JSON 500 response
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		log.Error().Interface("panic", recovered).Msg(trace.LogPrefix(ctx, "recover") + " handler panicked")

		err := errors.NewInternal("internal server error")
		c.Data(errors.ToHTTPStatus(err), "application/json", errors.ToJSON(err))
		c.Abort()
	})
}

// LoggerMiddleware logs each request once it has been served
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger := trace.Logger(c.Request.Context())
		status := c.Writer.Status()

		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.Error()
		case status >= http.StatusBadRequest:
			ev = logger.Warn()
		default:
			ev = logger.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// MetricsMiddleware counts requests by route template and status code
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// CORSMiddleware allows the configured origins, or every origin when none
// are configured or "*" is among them
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID"}
	return cors.New(cfg)
}

// BodyLimitMiddleware caps the request body size
func BodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// AuthMiddleware validates the bearer token in the Authorization header
func AuthMiddleware(jwtAuth *auth.JWTAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := trace.Logger(c.Request.Context())

		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			handler.RespondError(c.Writer, logger, errors.NewUnauthorized(err.Error()))
			c.Abort()
			return
		}

		claims, err := jwtAuth.ValidateToken(token)
		if err != nil {
			handler.RespondError(c.Writer, logger, errors.NewUnauthorized(err.Error()))
			c.Abort()
			return
		}

		c.Set("client", claims.Client)
		c.Next()
	}
}
