package handlers

import (
	"net/http"
	"testing"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

func seedBudget(t *testing.T, org, event uint) models.Budget {
	t.Helper()
	b := models.Budget{
		EventID:        event,
		OrganizationID: org,
		Category:       "Catering",
		EstimatedCents: 300000,
		ActualCents:    100000,
		Status:         "pending",
		Subcategories: []models.BudgetSubcategory{
			{
				Name:           "Dinner",
				EstimatedCents: 200000,
				ActualCents:    100000,
				Vendors:        []models.BudgetVendorShare{{VendorID: 1, AmountCents: 50000}},
			},
		},
	}
	if err := database.DB.Create(&b).Error; err != nil {
		t.Fatalf("seed budget: %v", err)
	}
	return b
}

func TestBudgetUpdateRejectedPayloadWritesNothing(t *testing.T) {
	openTestDB(t)
	org := seedOrg(t)
	ev := seedEvent(t, org.ID)
	b := seedBudget(t, org.ID, ev.ID)
	h := NewBudgetHandler()

	// Category edit plus an invalid subcategory in the same payload: the
	// whole request is rejected and the category edit must not stick.
	body := `{"category":"Changed","subcategories":[{"name":"  "}]}`
	c, rec := jsonCtx(http.MethodPatch, "/api/budgets/1", body)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if got := callStatus(t, h.Update(c), rec); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}

	var after models.Budget
	if err := database.DB.Preload("Subcategories.Vendors").First(&after, b.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.Category != "Catering" {
		t.Errorf("category = %q, want the original Catering", after.Category)
	}
	if len(after.Subcategories) != 1 || after.Subcategories[0].Name != "Dinner" {
		t.Fatalf("subcategories = %+v, want the original Dinner row", after.Subcategories)
	}
	if len(after.Subcategories[0].Vendors) != 1 {
		t.Errorf("vendor shares = %d, want the original 1", len(after.Subcategories[0].Vendors))
	}
}

func TestBudgetUpdateReplacesSubcategories(t *testing.T) {
	openTestDB(t)
	org := seedOrg(t)
	ev := seedEvent(t, org.ID)
	seedBudget(t, org.ID, ev.ID)
	florist := models.Vendor{Name: "Petal & Stem", Email: "hi@petals.test", OrganizationID: org.ID, CreatedByID: 1}
	if err := database.DB.Create(&florist).Error; err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	h := NewBudgetHandler()

	// Replaces the Dinner row; the share for vendor 999 belongs to nobody in
	// this organization and is dropped before the write.
	body := `{"subcategories":[
		{"name":"Flowers","estimated_cents":40000,"actual_cents":35000,
		 "vendors":[{"vendor_id":` + itoa(florist.ID) + `,"amount_cents":35000},{"vendor_id":999,"amount_cents":1}]}
	]}`
	c, rec := jsonCtx(http.MethodPatch, "/api/budgets/1", body)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if got := callStatus(t, h.Update(c), rec); got != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", got, rec.Body.String())
	}

	var after models.Budget
	if err := database.DB.Preload("Subcategories.Vendors").First(&after, 1).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(after.Subcategories) != 1 || after.Subcategories[0].Name != "Flowers" {
		t.Fatalf("subcategories = %+v, want a single Flowers row", after.Subcategories)
	}
	shares := after.Subcategories[0].Vendors
	if len(shares) != 1 || shares[0].VendorID != florist.ID || shares[0].AmountCents != 35000 {
		t.Fatalf("shares = %+v, want one share for the seeded vendor", shares)
	}

	var orphans int64
	database.DB.Model(&models.BudgetSubcategory{}).Where("name = ?", "Dinner").Count(&orphans)
	if orphans != 0 {
		t.Errorf("old Dinner subcategory still present")
	}
}
