package handlers

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

// TeamHandler manages the organization's member accounts. All routes are
// admin-only; the role guard sits in the router.
type TeamHandler struct{}

func NewTeamHandler() *TeamHandler { return &TeamHandler{} }

type CreateMemberReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (r CreateMemberReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// GET /api/teams
func (h *TeamHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Where("organization_id = ?", orgID(c)).
		Order("role ASC, name ASC").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, users)
}

// POST /api/teams
func (h *TeamHandler) Create(c echo.Context) error {
	var req CreateMemberReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": err})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "EMAIL_EXISTS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}

	u := models.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		Password:       string(hash),
		Phone:          req.Phone,
		Role:           "team",
		OrganizationID: orgID(c),
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

// PATCH /api/teams/:id/permission
func (h *TeamHandler) SetPermission(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var req struct {
		CanEditVendor bool `json:"can_edit_vendor"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	var u models.User
	if err := database.DB.First(&u, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	if u.Role == "admin" {
		// Admins always hold every permission.
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "CANNOT_EDIT_ADMIN"})
	}

	u.CanEditVendor = req.CanEditVendor
	if err := database.DB.Save(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /api/teams/:id
func (h *TeamHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	if uint(id) == userID(c) {
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "CANNOT_DELETE_SELF"})
	}
	tx := database.DB.Delete(&models.User{}, "id = ? AND organization_id = ? AND role <> 'admin'", id, orgID(c))
	if tx.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
