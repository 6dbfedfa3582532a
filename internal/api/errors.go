package api

import (
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	msgNotFound  = "Not found."
	msgNoProfile = "No profile exists for this identity."
	msgInternal  = "Internal server error."
)

// profileField is server-injected and never reported back to clients.
const profileField = "profile"

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": message})
}

// renderError maps a service error onto its HTTP response.
func renderError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, validationBody(verr))
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrNoProfile):
		abortWithError(c, http.StatusForbidden, msgNoProfile)
	default:
		log.WithError(err).WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"profile": getProfileID(c),
		}).Error("request failed")
		abortWithError(c, http.StatusInternalServerError, msgInternal)
	}
}

// validationBody renders a single message as a string and several as a
// list.
func validationBody(verr *service.ValidationError) gin.H {
	body := gin.H{}
	for field, messages := range verr.Fields {
		if field == profileField || len(messages) == 0 {
			continue
		}
		if len(messages) == 1 {
			body[field] = messages[0]
		} else {
			body[field] = messages
		}
	}
	return body
}
