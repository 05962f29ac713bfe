// handlers/auth.go
package handlers

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stemquest/database"
	"stemquest/middleware"
	"stemquest/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Grade    string `json:"grade"`
}

type GuestLoginRequest struct {
	GuestName string `json:"guest_name,omitempty"`
}

type UpgradeGuestRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token,omitempty"`
	User    UserInfo `json:"user,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type UserInfo struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsGuest   bool      `json:"is_guest"`
	CreatedAt time.Time `json:"created_at"`
}

func userInfo(user models.User) UserInfo {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     email,
		Role:      user.Role,
		IsGuest:   user.IsGuest,
		CreatedAt: user.CreatedAt,
	}
}

// GuestLogin creates a new guest student session
func GuestLogin(c *fiber.Ctx) error {
	var req GuestLoginRequest

	// An empty body is fine for guests
	_ = c.BodyParser(&req)

	db := database.GetDB()

	// Generate guest name if not provided
	guestName := req.GuestName
	if guestName == "" {
		guestName = fmt.Sprintf("Explorer_%s", uuid.New().String()[:8])
	}

	// Generate unique guest email
	guestEmail := fmt.Sprintf("guest_%s@stemquest.local", uuid.New().String()[:8])

	user := models.User{
		Username:  guestName,
		Email:     &guestEmail,
		Password:  "",
		Role:      models.RoleStudent,
		IsGuest:   true,
		CreatedAt: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to create guest account",
		})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		Token:   token,
		User:    userInfo(user),
	})
}

// Login authenticates a registered user
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username and password required",
		})
	}

	db := database.GetDB()

	var user models.User
	if err := db.Where("username = ? AND is_guest = ?", req.Username, false).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	db.Model(&user).Update("last_login", time.Now())

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		Token:   token,
		User:    userInfo(user),
	})
}

// Register creates a new user account
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username and password required",
		})
	}

	if len(req.Password) < 6 {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Password must be at least 6 characters",
		})
	}

	// Admins are created out of band, never via self-registration
	role := req.Role
	switch role {
	case "":
		role = models.RoleStudent
	case models.RoleStudent, models.RoleTeacher:
	default:
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid role",
		})
	}

	db := database.GetDB()

	var existingUser models.User
	if err := db.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username already taken",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to hash password",
		})
	}

	user := models.User{
		Username:  req.Username,
		Email:     &req.Email,
		Password:  string(hashedPassword),
		Role:      role,
		Grade:     req.Grade,
		IsGuest:   false,
		CreatedAt: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to create account",
		})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		Token:   token,
		User:    userInfo(user),
	})
}

// UpgradeGuest converts a guest account to a registered account
func UpgradeGuest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Unauthorized",
		})
	}

	var req UpgradeGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username and password required",
		})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(AuthResponse{
			Success: false,
			Error:   "User not found",
		})
	}

	if !user.IsGuest {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Account is already registered",
		})
	}

	var existingUser models.User
	if err := db.Where("username = ? AND id != ?", req.Username, userID).First(&existingUser).Error; err == nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username already taken",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to hash password",
		})
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"username":   req.Username,
		"email":      req.Email,
		"password":   string(hashedPassword),
		"is_guest":   false,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to upgrade account",
		})
	}

	db.First(&user, userID)

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		Token:   token,
		User:    userInfo(user),
	})
}

// Helper functions

func generateToken(user models.User) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"is_guest": user.IsGuest,
		"exp":      time.Now().Add(time.Hour * 720).Unix(), // 30 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
