package handlers

import (
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

// openTestDB swaps the package-global connection for an in-memory database
// scoped to the test. cache=shared keeps every pooled connection on the same
// store.
func openTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Event{},
		&models.Task{},
		&models.Budget{},
		&models.BudgetSubcategory{},
		&models.BudgetVendorShare{},
		&models.Vendor{},
		&models.Client{},
		&models.Template{},
		&models.TemplateItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = nil
	})
}

// jsonCtx builds an authenticated request context the way the auth middleware
// would leave it.
func jsonCtx(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(1))
	c.Set("organization_id", uint(1))
	c.Set("role", "admin")
	c.Set("name", "Ana")
	c.Set("can_edit_vendor", true)
	return c, rec
}

// callStatus runs a handler call to a status code, whichever way it reported.
func callStatus(t *testing.T, err error, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err == nil {
		return rec.Code
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("handler returned non-HTTP error: %v", err)
	}
	return he.Code
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func seedOrg(t *testing.T) models.Organization {
	t.Helper()
	org := models.Organization{Name: "Planovae Test Co", Currency: "USD"}
	if err := database.DB.Create(&org).Error; err != nil {
		t.Fatalf("seed org: %v", err)
	}
	return org
}

func seedEvent(t *testing.T, org uint) models.Event {
	t.Helper()
	ev := models.Event{
		Name:           "Launch Party",
		EventType:      "corporate",
		StartDate:      "2026-09-12",
		Status:         "active",
		OrganizationID: org,
		CreatedByID:    1,
	}
	if err := database.DB.Create(&ev).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return ev
}
