package handlers

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

type VendorHandler struct{}

func NewVendorHandler() *VendorHandler { return &VendorHandler{} }

// canEditVendor: admins always, team members only with the permission flag.
func canEditVendor(c echo.Context) bool {
	if isAdmin(c) {
		return true
	}
	ok, _ := c.Get("can_edit_vendor").(bool)
	return ok
}

type VendorReq struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

func (r VendorReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Phone, validation.Length(0, 20)),
	)
}

// GET /api/vendors
func (h *VendorHandler) List(c echo.Context) error {
	var vendors []models.Vendor
	q := database.DB.Where("organization_id = ?", orgID(c)).Order("name ASC")
	if s := strings.TrimSpace(c.QueryParam("search")); s != "" {
		q = q.Where("name ILIKE ?", "%"+s+"%")
	}
	if err := q.Find(&vendors).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, vendors)
}

// POST /api/vendors
func (h *VendorHandler) Create(c echo.Context) error {
	if !canEditVendor(c) {
		return echo.NewHTTPError(http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
	}
	var req VendorReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": err})
	}

	v := models.Vendor{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:          req.Phone,
		Avatar:         req.Avatar,
		Role:           strings.TrimSpace(req.Role),
		OrganizationID: orgID(c),
		CreatedByID:    userID(c),
	}
	if err := database.DB.Create(&v).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, v)
}

// PUT /api/vendors/:id
func (h *VendorHandler) Update(c echo.Context) error {
	if !canEditVendor(c) {
		return echo.NewHTTPError(http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
	}
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var v models.Vendor
	if err := database.DB.First(&v, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var p VendorReq
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.Name != "" {
		v.Name = strings.TrimSpace(p.Name)
	}
	if p.Email != "" {
		if err := validation.Validate(p.Email, is.Email); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "email invalid"})
		}
		v.Email = strings.TrimSpace(strings.ToLower(p.Email))
	}
	if p.Phone != "" {
		v.Phone = p.Phone
	}
	if p.Avatar != "" {
		v.Avatar = p.Avatar
	}
	if p.Role != "" {
		v.Role = strings.TrimSpace(p.Role)
	}

	if err := database.DB.Save(&v).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, v)
}

// DELETE /api/vendors/:id
// Budget vendor shares keep their row but become dangling references; the
// rollup ledger drops them at read time.
func (h *VendorHandler) Delete(c echo.Context) error {
	if !canEditVendor(c) {
		return echo.NewHTTPError(http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
	}
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Vendor{}, "id = ? AND organization_id = ?", id, orgID(c))
	if tx.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
