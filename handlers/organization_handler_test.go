package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

func TestOrganizationGet(t *testing.T) {
	openTestDB(t)
	seedOrg(t)
	h := NewOrganizationHandler()

	c, rec := jsonCtx(http.MethodGet, "/api/organization", "")
	if got := callStatus(t, h.Get(c), rec); got != http.StatusOK {
		t.Fatalf("status = %d, want 200", got)
	}
	if !strings.Contains(rec.Body.String(), "Planovae Test Co") {
		t.Errorf("body = %s, want the seeded name", rec.Body.String())
	}
}

func TestOrganizationUpdate(t *testing.T) {
	openTestDB(t)
	org := seedOrg(t)
	h := NewOrganizationHandler()

	body := `{"business_size":"11-50","website":"https://planovae.test","timezone":"Europe/Berlin"}`
	c, rec := jsonCtx(http.MethodPut, "/api/organization", body)
	if got := callStatus(t, h.Update(c), rec); got != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", got, rec.Body.String())
	}

	var after models.Organization
	if err := database.DB.First(&after, org.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.BusinessSize != "11-50" || after.Website != "https://planovae.test" || after.Timezone != "Europe/Berlin" {
		t.Errorf("org = %+v, want the updated settings", after)
	}
	if after.Name != "Planovae Test Co" {
		t.Errorf("name changed to %q on a partial update", after.Name)
	}
}

func TestOrganizationUpdateRejectsBadWebsite(t *testing.T) {
	openTestDB(t)
	seedOrg(t)
	h := NewOrganizationHandler()

	c, rec := jsonCtx(http.MethodPut, "/api/organization", `{"website":"not a url"}`)
	if got := callStatus(t, h.Update(c), rec); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
}
