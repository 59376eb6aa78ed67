package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/job-analysis/backend/internal/model"
	"github.com/job-analysis/backend/internal/service"
)

const (
	authSubjectKey = "auth_subject"
	requestIDKey   = "request_id"
)

// AuthMiddleware is the access gate: it resolves the bearer token to a
// subject before any protected handler runs. Missing header and expired
// token answer 401, a bad signature or malformed token answers 403.
func AuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		subject, err := tokens.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			status, message := gateStatus(err)
			c.JSON(status, model.MessageResponse{StatusCode: status, Message: message})
			c.Abort()
			return
		}

		c.Set(authSubjectKey, subject)
		c.Next()
	}
}

func gateStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrAuthMissing):
		return http.StatusUnauthorized, "Authorization header missing"
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, service.ErrTokenInvalid):
		return http.StatusForbidden, "Invalid token"
	default:
		return http.StatusUnauthorized, "Unauthorized"
	}
}

// AuthSubject returns the subject the gate resolved for this request.
func AuthSubject(c *gin.Context) string {
	if value, ok := c.Get(authSubjectKey); ok {
		if subject, ok := value.(string); ok {
			return subject
		}
	}
	return ""
}

// RequestIDMiddleware tags every response with an X-Request-Id,
// honoring one supplied by the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	allowAny := false
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAny = true
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := originMap[origin]
			if ok || allowAny {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
