package admin

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/validation"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
)

type AuthHandler struct {
	Logger        *slog.Logger
	DB            *gorm.DB
	AdminPassword string
}

func NewAuthHandler(logger *slog.Logger, db *gorm.DB, adminPassword string) *AuthHandler {
	return &AuthHandler{Logger: logger, DB: db, AdminPassword: adminPassword}
}

type loginInput struct {
	Password string `json:"password" binding:"required"`
}

// POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	if h.AdminPassword == "" {
		h.Logger.Error("ADMIN_PASSWORD not set, admin login disabled")
		middleware.Fail(c, apperr.Wrap(errors.New("admin password not configured")))
		return
	}

	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request.", validation.FromBindError(err, &in)))
		return
	}

	if subtle.ConstantTimeCompare([]byte(in.Password), []byte(h.AdminPassword)) != 1 {
		middleware.Fail(c, apperr.UnauthorizedErr("Invalid password."))
		return
	}

	sess, err := middleware.CreateAdminSession(h.DB.WithContext(c.Request.Context()))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      sess.SessionToken,
		"expires_at": sess.ExpiresAt,
	})
}
