package api

import (
	"alcyxob/fitness-tracker/internal/auth"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextProfileIDKey = "profileID"
	ContextProfileKey   = "profile"
)

// BasicAuth verifies the "id:token" pair of the Basic Authorization header
// and stores the id in the context. Any failure answers 401 with an empty
// body and a Basic challenge.
func BasicAuth(verifier auth.TokenVerifier, realm string) gin.HandlerFunc {
	challenge := fmt.Sprintf("Basic realm=%q", realm)
	return func(c *gin.Context) {
		id, token, ok := c.Request.BasicAuth()
		if !ok || id == "" || token == "" {
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err := verifier.Verify(c.Request.Context(), id, token); err != nil {
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				log.WithError(err).WithField("profile", id).Error("token verification failed")
			}
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextProfileIDKey, id)
		c.Next()
	}
}

// RequireProfile loads the caller's profile. Must run AFTER BasicAuth.
func RequireProfile(profiles service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := profiles.GetProfile(c.Request.Context(), getProfileID(c))
		if err != nil {
			renderError(c, err)
			return
		}
		c.Set(ContextProfileKey, profile)
		c.Next()
	}
}

// getProfileID returns the verified identity id set by BasicAuth.
func getProfileID(c *gin.Context) string {
	return c.GetString(ContextProfileIDKey)
}

// RequestLogger logs every finished request with its outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}
		if id := getProfileID(c); id != "" {
			fields["profile"] = id
		}
		entry := log.WithFields(fields)
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request served")
			return
		}
		entry.Debug("request served")
	}
}

// RequestMetrics counts requests per route and status and observes their
// duration.
func RequestMetrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.GaugeRequests.Inc()
		defer m.GaugeRequests.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		defer func(begin time.Time) {
			m.HistRequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
		}(time.Now())

		c.Next()

		m.CounterRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// PanicRecovery turns a handler panic into a 500 and counts it.
func PanicRecovery(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("http: panic serving %s: %v\n%s", c.Request.URL.Path, r, debug.Stack())
				if m != nil {
					m.CounterHandleRequestPanic.Inc()
				}
				abortWithError(c, http.StatusInternalServerError, msgInternal)
			}
		}()

		c.Next()
	}
}
