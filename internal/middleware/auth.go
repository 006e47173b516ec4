package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pharmaflow/pharmacy-api/internal/handler"
	"github.com/pharmaflow/pharmacy-api/internal/model"
	pkgauth "github.com/pharmaflow/pharmacy-api/pkg/auth"
)

const ContextClaims = "claims"

type AuthMiddleware struct {
	jwtSvc pkgauth.JWTService
}

func NewAuthMiddleware(jwtSvc pkgauth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// RequireAuth validates the bearer token and stores its claims.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("missing bearer token"))
			return
		}

		claims, err := m.jwtSvc.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("invalid token"))
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole gates a route to sessions carrying the given role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Role != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				handler.NewErrorResponse("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the validated token claims, or nil.
func ClaimsFromContext(c *gin.Context) *pkgauth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*pkgauth.Claims); ok {
			return claims
		}
	}
	return nil
}
