// Package auth implements the store's credential scheme: phone number
// plus a 6-digit password, no email. It replaced the hosted-provider
// sign-in flows; exactly one scheme is live.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

var (
	phonePattern    = regexp.MustCompile(`^01\d{9}$`)
	passwordPattern = regexp.MustCompile(`^\d{6}$`)
)

// passwordSalt is fixed: every stored hash was produced with it, so it
// cannot rotate without invalidating all existing accounts.
const passwordSalt = "salt-key-2024"

// HashPassword returns hex(SHA-256(password + salt)), the scheme the
// existing account records were created with.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + passwordSalt))
	return hex.EncodeToString(sum[:])
}

// ValidPhone reports whether phone is an 11-digit number starting with 01.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidPassword reports whether password is exactly six digits.
func ValidPassword(password string) bool {
	return passwordPattern.MatchString(password)
}

// SignUp validates the credentials, enforces phone uniqueness, stores
// the new account and returns it with a fresh token. Nothing is written
// unless every validation passes.
func SignUp(db *gorm.DB, name, phone, password string) (*models.User, string, error) {
	if !ValidPhone(phone) {
		return nil, "", ErrInvalidPhone
	}
	if !ValidPassword(password) {
		return nil, "", ErrInvalidPassword
	}
	if name == "" {
		return nil, "", ErrMissingName
	}

	var existing models.User
	err := db.Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		return nil, "", ErrDuplicatePhone
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Phone:        phone,
		Name:         name,
		PasswordHash: HashPassword(password),
		Role:         models.RoleUser,
		IsActive:     true,
		Cart:         models.Cart{},
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := IssueUserToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// SignIn checks the salted hash against an active account. Wrong phone
// and wrong password are indistinguishable to the caller. Performs no
// writes, so retries are always safe.
func SignIn(db *gorm.DB, phone, password string) (*models.User, string, error) {
	if !ValidPhone(phone) {
		return nil, "", ErrInvalidPhone
	}
	if !ValidPassword(password) {
		return nil, "", ErrInvalidPassword
	}

	var user models.User
	err := db.Where("phone = ? AND password_hash = ? AND is_active = ?",
		phone, HashPassword(password), true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	token, err := IssueUserToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// -------- HTTP surface --------

type customAuthRequest struct {
	Action   string `json:"action" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	GuestID  string `json:"guest_id"`
}

type publicUser struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// MergeGuestCart is injected by the caller so signing in can fold a
// guest cart into the user's cart without auth importing controllers.
type MergeGuestCart func(db *gorm.DB, guestID, userID string) error

// CustomAuthHandler serves POST /auth/custom with {action, phone,
// password, name?}. Responses mirror the storefront contract:
// {success, user?, token?, error?}.
func CustomAuthHandler(db *gorm.DB, mergeGuestCart MergeGuestCart) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customAuthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
			return
		}

		var (
			user  *models.User
			token string
			err   error
		)
		switch req.Action {
		case "signup":
			user, token, err = SignUp(db, req.Name, req.Phone, req.Password)
		case "signin":
			user, token, err = SignIn(db, req.Phone, req.Password)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported action"})
			return
		}

		if err != nil {
			c.JSON(authStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}

		// Fold any anonymous cart into the account. Best-effort: a merge
		// failure must not fail the sign-in itself.
		if req.GuestID != "" && mergeGuestCart != nil {
			if mergeErr := mergeGuestCart(db, req.GuestID, user.ID); mergeErr != nil {
				log.Printf("❌ Guest cart merge failed for %s: %v", req.GuestID, mergeErr)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    publicUser{ID: user.ID, Phone: user.Phone, Name: user.Name, Role: string(user.Role)},
			"token":   token,
		})
	}
}

// authStatus maps a failure class to its HTTP status. Validation and
// duplicates are 400, bad credentials 401, misconfiguration and
// everything else 500.
func authStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrMissingName),
		errors.Is(err, ErrDuplicatePhone):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
