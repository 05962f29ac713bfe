// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"stemquest/database"
	"stemquest/models"
)

func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	tokenString := parts[1]
	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{"error": "Token expired"})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("role", claims["role"])
	c.Locals("isGuest", claims["is_guest"])

	// Update user's last activity
	updateUserActivity(database.GetDB(), claims["user_id"])

	return c.Next()
}

// RequireRole gates a route group to the given roles. Admins pass every
// check.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == models.RoleAdmin {
			return c.Next()
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Access denied"})
	}
}

func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := userID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

func GetUsername(c *fiber.Ctx) (string, error) {
	username := c.Locals("username")
	if username == nil {
		return "", fiber.NewError(401, "User not authenticated")
	}

	if name, ok := username.(string); ok {
		return name, nil
	}

	return "", fiber.NewError(401, "Invalid username format")
}

func IsGuest(c *fiber.Ctx) bool {
	isGuest := c.Locals("isGuest")
	if isGuest == nil {
		return false
	}

	if guest, ok := isGuest.(bool); ok {
		return guest
	}

	return false
}

// updateUserActivity updates the user's last activity timestamp
func updateUserActivity(db *gorm.DB, userID interface{}) {
	if userID == nil || db == nil {
		return
	}

	var id uint
	switch v := userID.(type) {
	case float64:
		id = uint(v)
	case uint:
		id = v
	default:
		return
	}

	now := time.Now().UTC()
	db.Model(&models.User{}).Where("id = ?", id).Update("last_activity", now)
}
