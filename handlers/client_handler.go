package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

type ClientHandler struct {
	// Base URL the generated share links point at.
	ClientBaseURL string
}

func NewClientHandler(baseURL string) *ClientHandler {
	return &ClientHandler{ClientBaseURL: baseURL}
}

type ClientReq struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

func (r ClientReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// GET /api/clients
func (h *ClientHandler) List(c echo.Context) error {
	var clients []models.Client
	if err := database.DB.Where("organization_id = ?", orgID(c)).
		Order("name ASC").Find(&clients).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, clients)
}

// POST /api/clients
func (h *ClientHandler) Create(c echo.Context) error {
	var req ClientReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": err})
	}

	cl := models.Client{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:          req.Phone,
		Avatar:         req.Avatar,
		OrganizationID: orgID(c),
		CreatedByID:    userID(c),
	}
	if err := database.DB.Create(&cl).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, cl)
}

// PUT /api/clients/:id
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var cl models.Client
	if err := database.DB.First(&cl, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var p ClientReq
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if p.Name != "" {
		cl.Name = strings.TrimSpace(p.Name)
	}
	if p.Email != "" {
		if err := validation.Validate(p.Email, is.Email); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "email invalid"})
		}
		cl.Email = strings.TrimSpace(strings.ToLower(p.Email))
	}
	if p.Phone != "" {
		cl.Phone = p.Phone
	}
	if p.Avatar != "" {
		cl.Avatar = p.Avatar
	}

	if err := database.DB.Save(&cl).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, cl)
}

// DELETE /api/clients/:id
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Client{}, "id = ? AND organization_id = ?", id, orgID(c))
	if tx.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/clients/:id/assigned-events
func (h *ClientHandler) AssignedEvents(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var cl models.Client
	if err := database.DB.First(&cl, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	var events []models.Event
	if err := database.DB.
		Joins("JOIN event_clients ec ON ec.event_id = events.id").
		Where("ec.client_id = ? AND events.organization_id = ?", cl.ID, orgID(c)).
		Order("events.start_date ASC").Find(&events).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, events)
}

// POST /api/clients/:id/share?event_id=
// Issues the client's access token on first use (it never rotates here) and
// returns the read-only event link for them.
func (h *ClientHandler) Share(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	eventID := atoiOr(c.QueryParam("event_id"), 0)
	if eventID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "EVENT_ID_REQUIRED"})
	}

	var cl models.Client
	if err := database.DB.First(&cl, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	var ev models.Event
	if err := database.DB.First(&ev, "id = ? AND organization_id = ?", eventID, orgID(c)).Error; err != nil {
		return lookupErr(err, "EVENT_NOT_FOUND")
	}

	if cl.AccessToken == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "TOKEN_GEN_FAILED"})
		}
		cl.AccessToken = hex.EncodeToString(buf)
		if err := database.DB.Save(&cl).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
		}
	}

	link := fmt.Sprintf("%s/client/view/%d?token=%s",
		strings.TrimRight(h.ClientBaseURL, "/"), ev.ID, cl.AccessToken)
	return c.JSON(http.StatusOK, map[string]string{"link": link})
}
