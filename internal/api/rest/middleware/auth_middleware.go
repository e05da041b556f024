package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Dhoini/invoice-dashboard/internal/auth"
	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/Dhoini/invoice-dashboard/pkg/res"
	"github.com/gin-gonic/gin"
)

// ContextKey тип для ключей контекста во избежание коллизий.
type ContextKey string

const (
	// ContextUserIDKey ключ для хранения ID пользователя в контексте
	ContextUserIDKey ContextKey = "userID"
	// ContextUserEmailKey ключ для email пользователя
	ContextUserEmailKey ContextKey = "userEmail"

	authHeaderPrefix = "Bearer "
)

// SessionMiddleware пропускает к дашборду только запросы с действующей сессией
type SessionMiddleware struct {
	cookieName string
	validator  auth.TokenValidator
	log        *logger.Logger
}

// NewSessionMiddleware создает middleware проверки сессии
func NewSessionMiddleware(cookieName string, validator auth.TokenValidator, log *logger.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: cookieName,
		validator:  validator,
		log:        log,
	}
}

// RequireSession берет токен из cookie сессии, а если ее нет, из заголовка
// Authorization: Bearer.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.token(c)
		if token == "" {
			m.handleAuthError(c, "Missing session token")
			return
		}

		claims, err := m.validator.Validate(token)
		if err != nil {
			m.handleAuthError(c, "Session validation failed: "+err.Error())
			return
		}

		if claims.Subject == "" {
			m.handleAuthError(c, "User ID (sub) missing in token")
			return
		}

		c.Set(string(ContextUserIDKey), claims.Subject)
		c.Set(string(ContextUserEmailKey), claims.UserEmail)
		m.log.Debugw("User authenticated", "userID", claims.Subject)
		c.Next()
	}
}

func (m *SessionMiddleware) token(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, authHeaderPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, authHeaderPrefix))
	}
	return ""
}

func (m *SessionMiddleware) handleAuthError(c *gin.Context, message string) {
	m.log.Warnw("HTTP authentication failed", "path", c.Request.URL.Path, "error", message)
	_ = c.Error(fmt.Errorf("%w: %s", domain.ErrUnauthenticated, message))
	res.JsonResponse(c.Writer, res.ErrorResponse{
		Error:     message,
		ErrorCode: http.StatusUnauthorized,
	}, http.StatusUnauthorized)
	c.Abort()
}
