package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminSession is a database-backed bearer token for the admin panel.
type AdminSession struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	SessionToken string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_admin_sessions_token"`
	ExpiresAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (AdminSession) TableName() string { return "admin_sessions" }

const AdminSessionTTL = 24 * time.Hour

// CreateAdminSession issues a fresh token; the caller has already verified
// the admin credential.
func CreateAdminSession(db *gorm.DB) (*AdminSession, error) {
	now := time.Now()
	sess := &AdminSession{
		ID:           uuid.NewString(),
		SessionToken: uuid.NewString(),
		ExpiresAt:    now.Add(AdminSessionTTL),
		CreatedAt:    now,
	}
	if err := db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// RequireAdmin validates `Authorization: Bearer <token>` against the
// admin_sessions table. Expired rows are treated the same as unknown ones.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "admin authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		var sess AdminSession
		err := db.WithContext(c.Request.Context()).
			Where("session_token = ? AND expires_at > ?", token, time.Now()).
			First(&sess).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
