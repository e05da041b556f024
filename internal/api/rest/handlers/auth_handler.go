package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dhoini/invoice-dashboard/internal/auth"
	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/service"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/Dhoini/invoice-dashboard/pkg/req"
	"github.com/Dhoini/invoice-dashboard/pkg/res"
	"github.com/gin-gonic/gin"
)

// DashboardPath куда попадает пользователь после входа
const DashboardPath = "/dashboard"

// loginFields поля формы входа
var loginFields = []string{"email", "password"}

// AuthHandler обработчик формы входа
type AuthHandler struct {
	service    service.AuthService
	cookieName string
	secure     bool
	log        *logger.Logger
}

// NewAuthHandler создает обработчик входа. secure включает флаг Secure у cookie сессии.
func NewAuthHandler(svc service.AuthService, cookieName string, secure bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service:    svc,
		cookieName: cookieName,
		secure:     secure,
		log:        log,
	}
}

// Login проверяет учетные данные и открывает сессию
func (h *AuthHandler) Login(c *gin.Context) {
	form, err := req.Form(c.Request, loginFields...)
	if err != nil {
		h.log.Warn("Invalid login form: %v", err)
		res.Error(c.Writer, http.StatusBadRequest, "Invalid form body", h.log)
		return
	}

	result, err := h.service.Authenticate(c.Request.Context(), c.PostForm("prevState"), auth.Credentials(form))
	if err != nil {
		// Неклассифицированная ошибка провайдера не превращается в сообщение формы
		_ = c.Error(fmt.Errorf("%w: %w", domain.ErrInternal, err))
		h.log.Error("Sign-in failed unexpectedly: %v", err)
		res.Error(c.Writer, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	if result.Message != "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": result.Message})
		return
	}

	maxAge := int(time.Until(result.Session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.Session.Token, maxAge, "/", "", h.secure, true)
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

// Logout закрывает сессию
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
