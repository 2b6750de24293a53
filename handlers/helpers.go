package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var reHHMM = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

func isDateYYYYMMDD(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func mustID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// atoiOr converts s to int, falling back to def on empty or bad input.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// orgID is the caller's tenant, attached by the auth middleware. Every data
// query in this package must filter by it.
func orgID(c echo.Context) uint {
	id, _ := c.Get("organization_id").(uint)
	return id
}

func userID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return strings.EqualFold(role, "admin")
}

// lookupErr maps a single-record fetch error to a response: a missing row is
// 404 with the given code, anything else is a database failure, not a 404.
func lookupErr(err error, code string) *echo.HTTPError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": code})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
}
