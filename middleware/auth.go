package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
	"github.com/gin-gonic/gin"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

type AuthConfig struct {
	// SessionNotRequired lets anonymous viewers through; hydration then runs
	// without a viewer id
	SessionNotRequired bool
	// ProfileNotRequired admits a verified session that has not created an
	// application profile yet (the profile-creation route itself needs this)
	ProfileNotRequired bool
}

// Auth verifies the Firebase ID token and loads the application profile. A
// missing or invalid token halts the request before any handler mutation
// runs.
func Auth(userDB appDb.UserDatabase, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		token, err := authClient.VerifyIDToken(c, authorizationHeader[0][7:])

		if err != nil {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.ProfileNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireAdmin gates moderation routes. Run it after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUserMaybe(c)
		if user == nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must be an admin",
			})
			c.Abort()
		}
	}
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}

// GetUserMaybe returns nil for anonymous viewers
func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

// GetUserIdMaybe returns "" for anonymous viewers
func GetUserIdMaybe(c *gin.Context) string {
	if user := GetUserMaybe(c); user != nil {
		return user.Id
	}
	return ""
}
