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

// OrganizationHandler exposes the caller's own tenant record. There is no
// cross-tenant access; the id always comes from the token.
type OrganizationHandler struct{}

func NewOrganizationHandler() *OrganizationHandler { return &OrganizationHandler{} }

// GET /api/organization
func (h *OrganizationHandler) Get(c echo.Context) error {
	var org models.Organization
	if err := database.DB.First(&org, "id = ?", orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	return c.JSON(http.StatusOK, org)
}

type OrganizationReq struct {
	Name         string `json:"name"`
	BusinessType string `json:"business_type"`
	BusinessSize string `json:"business_size"`
	Country      string `json:"country"`
	Currency     string `json:"currency"`
	Timezone     string `json:"timezone"`
	Website      string `json:"website"`
}

func (r OrganizationReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 120)),
		validation.Field(&r.Currency, validation.Length(0, 10), is.UpperCase),
		validation.Field(&r.Website, is.URL),
	)
}

// PUT /api/organization (admin only)
func (h *OrganizationHandler) Update(c echo.Context) error {
	var org models.Organization
	if err := database.DB.First(&org, "id = ?", orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var req OrganizationReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": err})
	}

	if req.Name != "" {
		org.Name = strings.TrimSpace(req.Name)
	}
	if req.BusinessType != "" {
		org.BusinessType = req.BusinessType
	}
	if req.BusinessSize != "" {
		org.BusinessSize = req.BusinessSize
	}
	if req.Country != "" {
		org.Country = req.Country
	}
	if req.Currency != "" {
		org.Currency = req.Currency
	}
	if req.Timezone != "" {
		org.Timezone = req.Timezone
	}
	if req.Website != "" {
		org.Website = req.Website
	}

	if err := database.DB.Save(&org).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, org)
}
