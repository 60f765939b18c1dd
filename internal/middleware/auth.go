package middleware

import (
	"net/http"

	"myzone/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	UserKey    = "user"
	CookieName = "auth_token"
)

func clearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// Auth loads the user behind the auth cookie, if any, into the context.
// Requests without a valid token continue as anonymous.
func Auth(authService *auth.Service) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil {
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Debug().Err(err).Msg("Discarding invalid auth cookie")
			clearCookie(c)
			c.Next()
			return
		}

		user, err := authService.GetUserByID(claims.UserID)
		if err != nil {
			clearCookie(c)
			c.Next()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	})
}

// RequireAuth sends anonymous visitors to the login page.
func RequireAuth() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if _, exists := c.Get(UserKey); !exists {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}

		c.Next()
	})
}

// RequireAPIAuth rejects anonymous API calls with 401.
func RequireAPIAuth() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if _, exists := c.Get(UserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Next()
	})
}
