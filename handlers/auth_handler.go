package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":             u.ID,
		"org":             u.OrganizationID,
		"role":            u.Role,
		"name":            u.Name,
		"can_edit_vendor": u.CanEditVendor,
		"exp":             time.Now().Add(ttl).Unix(),
		"iat":             time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

func userPayload(u *models.User) map[string]any {
	return map[string]any{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"role":            u.Role,
		"organization_id": u.OrganizationID,
		"can_edit_vendor": u.CanEditVendor,
		"theme":           u.Theme,
	}
}

/* ====================== DTOs ====================== */

type SignupReq struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name"`
	BusinessType     string `json:"business_type"`
	Country          string `json:"country"`
	Currency         string `json:"currency"`
	Timezone         string `json:"timezone"`
}

func (r SignupReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.OrganizationName, validation.Required, validation.Length(1, 120)),
	)
}

type SigninReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/* ====================== Handlers ====================== */

// POST /auth/signup
// Creates the organization and its admin account in one transaction.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": err})
	}

	var dup models.User
	if err := database.DB.Where("email = ?", req.Email).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	org := models.Organization{
		Name:         req.OrganizationName,
		BusinessType: req.BusinessType,
		Country:      req.Country,
		Currency:     req.Currency,
		Timezone:     req.Timezone,
		Plan:         "free",
	}
	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     "admin",
	}

	tx := database.DB.Begin()
	if err := tx.Create(&org).Error; err != nil {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_CREATE_FAILED"})
	}
	user.OrganizationID = org.ID
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_CREATE_FAILED"})
	}
	if err := tx.Model(&org).Update("admin_id", user.ID).Error; err != nil {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_CREATE_FAILED"})
	}
	if err := tx.Commit().Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_CREATE_FAILED"})
	}

	token, err := h.signJWT(&user, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"token": token, "user": userPayload(&user)})
}

// POST /auth/signin
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": userPayload(&u)})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ? AND organization_id = ?", userID(c), orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	return c.JSON(http.StatusOK, userPayload(&u))
}
