package middlewares

import (
	"errors"
	"net/http"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TableSessionGuard enforces session expiry on every table request, so a
// paid table is logged out on time even when the background sweep lags.
// Expiry is deferred while the table holds a pending or served order.
// Non-table roles pass through untouched.
func TableSessionGuard() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := UserRole(ctx)
		if !ok || role != models.RoleTable {
			ctx.Next()
			return
		}

		token, ok := SessionToken(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Table session token missing"})
			return
		}

		var session models.TableSession
		err := initializers.DB.Where("session_token = ?", token).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unknown table session"})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to check table session"})
			return
		}

		if !session.Active {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired, please log in again"})
			return
		}

		if session.IsExpirable(models.SessionGrace()) {
			active, err := models.HasActiveOrder(initializers.DB, session.TableID)
			if err != nil {
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to check table orders"})
				return
			}
			if !active {
				// Two concurrent requests may both end up here; both
				// writes set active=false, which is harmless.
				if err := session.Expire(initializers.DB); err != nil {
					initializers.LogError("middlewares", "expire table session", err)
				}
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired, please log in again"})
				return
			}
		}

		ctx.Set("table_session", &session)
		ctx.Next()
	}
}
