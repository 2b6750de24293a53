package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

// PUT /api/profile
func (h *ProfileHandler) Update(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", userID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var p struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		Location     string `json:"location"`
		ProfileImage string `json:"profile_image"`
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.Name != "" {
		u.Name = strings.TrimSpace(p.Name)
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	if p.Location != "" {
		u.Location = strings.TrimSpace(p.Location)
	}
	if p.ProfileImage != "" {
		u.ProfileImage = p.ProfileImage
	}

	if err := database.DB.Save(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, u)
}

// PUT /api/profile/password
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var p struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if len(p.NewPassword) < 8 || len(p.NewPassword) > 72 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "PASSWORD_TOO_SHORT"})
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", userID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(p.OldPassword)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{"error": "WRONG_PASSWORD"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	u.Password = string(hash)
	if err := database.DB.Save(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

// PUT /api/profile/theme
func (h *ProfileHandler) SetTheme(c echo.Context) error {
	var p struct {
		Theme string `json:"theme"`
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.Theme != "light" && p.Theme != "dark" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "THEME_INVALID"})
	}
	if err := database.DB.Model(&models.User{}).Where("id = ?", userID(c)).
		Update("theme", p.Theme).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"theme": p.Theme})
}
