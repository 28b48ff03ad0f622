package middleware

import (
	profileRepo "deskhive/database/repository/profile"
	"deskhive/models"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileSyncMiddleware mirrors the verified token claims into the profiles
// collection so admins can browse customers without calling the identity
// provider. Best effort: a failed upsert never blocks the request.
func ProfileSyncMiddleware(profiles profileRepo.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("userID")
		id, ok := userID.(string)
		if ok && id != "" {
			email, _ := c.Get("userEmail")
			name, _ := c.Get("userName")
			role, _ := c.Get("userRole")
			profile := &models.Profile{
				UserID: id,
				Email:  asString(email),
				Name:   asString(name),
				Role:   asString(role),
			}
			if err := profiles.Upsert(c.Request.Context(), profile); err != nil {
				utils.GetLogger().Warn("profile sync failed", zap.String("user_id", id), zap.Error(err))
			}
		}
		c.Next()
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
