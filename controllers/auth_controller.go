package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/middleware"
	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/services"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func publicUser(u *models.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role}
}

func setSessionCookie(c *gin.Context, sess *models.Session) {
	c.SetCookie(services.SessionCookieName, sess.ID,
		int(services.SessionTTL.Seconds()), "/", "", false, true)
}

// ====== HANDLERS ======

// POST /api/auth/register
func Register(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hashed),
		Role:     models.RoleCitizen,
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	// Auto-login after registration
	sess, err := services.CreateSession(db, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}
	setSessionCookie(c, sess)

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration successful",
		"user":    publicUser(&user),
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	// Blocked accounts never get a session, even with valid credentials.
	if user.Blocked {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Your account has been blocked"})
		return
	}

	sess, err := services.CreateSession(db, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}
	setSessionCookie(c, sess)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    publicUser(&user),
	})
}

// POST /api/auth/logout
func Logout(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	if token, err := c.Cookie(services.SessionCookieName); err == nil && token != "" {
		if err := services.DeleteSession(db, token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
			return
		}
	}
	c.SetCookie(services.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	stats, err := services.ComputeUserStats(db, userID)
	if err != nil {
		stats = &services.UserStats{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  publicUser(&user),
		"stats": stats,
	})
}
