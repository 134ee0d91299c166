package middleware

import (
	"net/http"
	"strings"
	"time"

	"projectlog/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

type Claims struct {
	UserID   int            `json:"uid"`
	Username string         `json:"username"`
	Role     model.RoleName `json:"role"`
	jwt.RegisteredClaims
}

var (
	jwtSecret []byte
	tokenTTL  time.Duration
)

// Init must run before any token is issued or checked. The secret comes
// from configuration, never from a literal in this package.
func Init(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	tokenTTL = ttl
}

func GenerateToken(u *model.User) (string, time.Time, error) {
	expires := time.Now().Add(tokenTTL)
	claims := &Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.RoleName(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	return token, expires, err
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		claims, err := ValidateToken(auth[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, model.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})

		// Reissue when less than a quarter of the TTL remains.
		if time.Until(claims.ExpiresAt.Time) < tokenTTL/4 {
			fresh, _, err := GenerateToken(&model.User{
				ID:       claims.UserID,
				Username: claims.Username,
				Role:     model.Role{Name: string(claims.Role)},
			})
			if err == nil {
				c.Header("X-New-Token", fresh)
			}
		}

		c.Next()
	}
}

// RequireRole gates a route group on the caller's role. It assumes Auth
// already ran.
func RequireRole(roles ...model.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		for _, role := range roles {
			if id.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func GetIdentity(c *gin.Context) model.Identity {
	v, _ := c.Get(identityKey)
	id, _ := v.(model.Identity)
	return id
}
