package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"focusquest/internal/core/domain"
	"focusquest/pkg/apierrors"
)

const identityContextKey = "identity"

// AuthMiddleware resolves the request identity from a bearer JWT.
// No Authorization header means a guest session; a present but
// invalid token is rejected. The user id is the token's sub claim.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(identityContextKey, domain.Guest())
			c.Next()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header || raw == "" {
			abortUnauthorized(c)
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			abortUnauthorized(c)
			return
		}

		c.Set(identityContextKey, domain.User(subject))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	lang := GetLang(c)
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
	)
}

// GetIdentity returns the identity set by AuthMiddleware, guest when
// the middleware did not run.
func GetIdentity(c *gin.Context) domain.Identity {
	if value, exists := c.Get(identityContextKey); exists {
		if identity, ok := value.(domain.Identity); ok {
			return identity
		}
	}
	return domain.Guest()
}
