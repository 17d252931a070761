package middleware

import (
	"net/http"
	"strings"

	"wastebank/utils"

	"github.com/gin-gonic/gin"
)

// ExtractToken reads the session token from the cookie or, failing
// that, an Authorization bearer header.
func ExtractToken(c *gin.Context) (string, bool) {
	token, err := c.Cookie("token")
	if err == nil && token != "" {
		return token, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func AuthMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Token validation resolves synchronously here, so the state
		// fed to the gate is never AuthPending; that state belongs to
		// clients still waiting on /auth/me.
		state := AuthAnonymous
		callerRole := ""
		callerID := ""

		if token, ok := ExtractToken(c); ok {
			if claims, err := utils.ValidateToken(token); err == nil {
				state = AuthAuthenticated
				callerRole = claims.Role
				callerID = claims.ID
			}
		}

		if !applyGateResult(c, GateDecision(state, callerRole, role)) {
			return
		}

		c.Set("userID", callerID)
		c.Set("role", callerRole)

		c.Next()
	}
}

// applyGateResult writes the HTTP response for a gate decision and
// reports whether the request may proceed. Wait never redirects; it
// holds the request back with a bare 401 until the auth state settles.
func applyGateResult(c *gin.Context, result GateResult) bool {
	switch result {
	case GateAllow:
		return true
	case GateWait:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization check pending"})
	case GateRedirectUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role", "redirect": "/unauthorized"})
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token not provided or invalid", "redirect": "/login"})
	}
	c.Abort()
	return false
}
