package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storerating/internal/app/storerating/entity"
	"storerating/internal/app/storerating/util"
)

// AuthMiddleware проверяет JWT токен в запросах.
// Токен самодостаточен: проверка подписи не требует обращения к БД.
type AuthMiddleware struct {
	jwtManager *util.JWTManager
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(jwtManager *util.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// Authenticate проверяет JWT токен и добавляет данные пользователя в контекст Gin
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.claimsFromRequest(c)
		if err != nil {
			if errors.Is(err, util.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Unauthorized",
					"message": "Token has expired",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Unauthorized",
					"message": err.Error(),
				})
			}
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthenticate пропускает запрос и без токена: открытые чтения
// аннотируют выдачу собственной оценкой вызывающего, если он представился.
// Невалидный токен приравнивается к анонимному вызову.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := m.claimsFromRequest(c); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireRole пропускает только вызывающих с одной из перечисленных ролей.
// Проверка чистая: только роль из claims против разрешенного набора,
// закрыта по умолчанию.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Unauthorized",
			})
			c.Abort()
			return
		}

		role, ok := roleValue.(entity.Role)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Unauthorized",
			})
			c.Abort()
			return
		}

		hasRole := false
		for _, allowed := range roles {
			if role == allowed {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) claimsFromRequest(c *gin.Context) (*util.JWTClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("invalid authorization header format")
	}

	return m.jwtManager.ValidateToken(parts[1])
}

func setClaims(c *gin.Context, claims *util.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
}

// currentUserID достает ID вызывающего из контекста Gin
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// optionalUserID возвращает указатель на ID вызывающего или nil для анонима
func optionalUserID(c *gin.Context) *uuid.UUID {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}
	return &userID
}
