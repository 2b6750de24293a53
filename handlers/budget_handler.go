package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
	"github.com/Raihanhn/event-saas/rollup"
)

type BudgetHandler struct{}

func NewBudgetHandler() *BudgetHandler { return &BudgetHandler{} }

/* ====================== DTOs ====================== */

type SubcategoryReq struct {
	Name           string `json:"name"`
	EstimatedCents int64  `json:"estimated_cents"`
	ActualCents    int64  `json:"actual_cents"`
	Vendors        []struct {
		VendorID    uint  `json:"vendor_id"`
		AmountCents int64 `json:"amount_cents"`
	} `json:"vendors"`
}

type UpdateBudgetReq struct {
	Category       *string          `json:"category"`
	EstimatedCents *int64           `json:"estimated_cents"`
	ActualCents    *int64           `json:"actual_cents"`
	Subcategories  []SubcategoryReq `json:"subcategories"`
	// Single vendor-share amount update (inline "paid" edit in the ledger).
	VendorUpdate *struct {
		SubcategoryName string `json:"subcategory_name"`
		VendorID        uint   `json:"vendor_id"`
		AmountCents     int64  `json:"amount_cents"`
	} `json:"subcategory_vendor_update"`
}

/* ====================== CRUD ====================== */

// GET /api/budgets?event_id=
func (h *BudgetHandler) List(c echo.Context) error {
	eventID := atoiOr(c.QueryParam("event_id"), 0)
	if eventID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "EVENT_ID_REQUIRED"})
	}
	budgets, err := h.eventBudgets(c, uint(eventID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, budgets)
}

// POST /api/budgets
func (h *BudgetHandler) Create(c echo.Context) error {
	var v models.Budget
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(v.Category) == "" {
		fields["category"] = "category is required"
	}
	if v.EventID == 0 {
		fields["event_id"] = "event_id is required"
	}
	if v.EstimatedCents < 0 || v.ActualCents < 0 {
		fields["amounts"] = "must not be negative"
	}
	if len(fields) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}

	var ev models.Event
	if err := database.DB.First(&ev, "id = ? AND organization_id = ?", v.EventID, orgID(c)).Error; err != nil {
		return lookupErr(err, "EVENT_NOT_FOUND")
	}

	v.OrganizationID = orgID(c)
	if v.Status == "" {
		v.Status = "pending"
	}
	h.dropUnknownVendors(c, v.Subcategories)
	if err := database.DB.Create(&v).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": v.ID})
}

// PATCH /api/budgets/:id
// Accepts partial category-level edits, a full subcategory replace, or a
// single vendor-share amount update.
func (h *BudgetHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var b models.Budget
	if err := database.DB.Preload("Subcategories.Vendors").
		First(&b, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var req UpdateBudgetReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		b.Category = strings.TrimSpace(*req.Category)
	}
	if req.EstimatedCents != nil {
		if *req.EstimatedCents < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "estimated_cents invalid"})
		}
		b.EstimatedCents = *req.EstimatedCents
	}
	if req.ActualCents != nil {
		if *req.ActualCents < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "actual_cents invalid"})
		}
		b.ActualCents = *req.ActualCents
	}

	// Validate the replacement payload before anything is written, so a
	// rejected request leaves the budget untouched.
	var subs []models.BudgetSubcategory
	if req.Subcategories != nil {
		var err error
		subs, err = h.buildSubcategories(c, b.ID, req.Subcategories)
		if err != nil {
			return err
		}
	}

	// The save and the subcategory rewrite commit together or not at all.
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&b).Error; err != nil {
			return err
		}
		switch {
		case req.Subcategories != nil:
			return replaceSubcategories(tx, b.ID, subs)
		case req.VendorUpdate != nil:
			return updateVendorShare(tx, &b, req.VendorUpdate.SubcategoryName,
				req.VendorUpdate.VendorID, req.VendorUpdate.AmountCents)
		}
		return nil
	}); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}

	if err := database.DB.Preload("Subcategories.Vendors").
		First(&b, "id = ?", b.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /api/budgets/:id
func (h *BudgetHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var b models.Budget
	if err := database.DB.First(&b, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		var subIDs []uint
		if err := tx.Model(&models.BudgetSubcategory{}).Where("budget_id = ?", b.ID).Pluck("id", &subIDs).Error; err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := tx.Delete(&models.BudgetVendorShare{}, "subcategory_id IN ?", subIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.BudgetSubcategory{}, "id IN ?", subIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&b).Error
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}

/* ====================== Status transitions ====================== */

// POST /api/budgets/:id/approve   pending -> approved
func (h *BudgetHandler) Approve(c echo.Context) error {
	return h.transition(c, "pending", "approved")
}

// POST /api/budgets/:id/mark-paid   approved -> paid
func (h *BudgetHandler) MarkPaid(c echo.Context) error {
	return h.transition(c, "approved", "paid")
}

func (h *BudgetHandler) transition(c echo.Context, from, to string) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var b models.Budget
	if err := database.DB.First(&b, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	if b.Status != from {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "INVALID_STATUS", "status": b.Status})
	}
	b.Status = to
	if err := database.DB.Save(&b).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, b)
}

/* ====================== Rollups ====================== */

// GET /api/budgets/summary?event_id=
func (h *BudgetHandler) Summary(c echo.Context) error {
	ev, budgets, err := h.eventWithBudgets(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rollup.Summarize(ev.TotalBudgetCents, toRollupBudgets(budgets)))
}

// GET /api/budgets/vendor-overview?event_id=
func (h *BudgetHandler) VendorOverview(c echo.Context) error {
	_, budgets, err := h.eventWithBudgets(c)
	if err != nil {
		return err
	}
	dir, err := h.vendorDirectory(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rollup.FlattenVendorLedger(toRollupBudgets(budgets), dir))
}

// GET /api/budgets/chart?event_id=
func (h *BudgetHandler) Chart(c echo.Context) error {
	_, budgets, err := h.eventWithBudgets(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rollup.CategoryChartSeries(toRollupBudgets(budgets)))
}

/* ====================== internal ====================== */

func (h *BudgetHandler) eventWithBudgets(c echo.Context) (*models.Event, []models.Budget, error) {
	eventID := atoiOr(c.QueryParam("event_id"), 0)
	if eventID <= 0 {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "EVENT_ID_REQUIRED"})
	}
	var ev models.Event
	if err := database.DB.First(&ev, "id = ? AND organization_id = ?", eventID, orgID(c)).Error; err != nil {
		return nil, nil, lookupErr(err, "EVENT_NOT_FOUND")
	}
	budgets, err := h.eventBudgets(c, ev.ID)
	if err != nil {
		return nil, nil, err
	}
	return &ev, budgets, nil
}

func (h *BudgetHandler) eventBudgets(c echo.Context, eventID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := database.DB.Preload("Subcategories.Vendors").
		Where("event_id = ? AND organization_id = ?", eventID, orgID(c)).
		Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return budgets, nil
}

func (h *BudgetHandler) vendorDirectory(c echo.Context) (rollup.Directory, error) {
	var vendors []models.Vendor
	if err := database.DB.Where("organization_id = ?", orgID(c)).Find(&vendors).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	dir := make(rollup.Directory, len(vendors))
	for _, v := range vendors {
		dir[v.ID] = rollup.VendorInfo{ID: v.ID, Name: v.Name, Avatar: v.Avatar}
	}
	return dir, nil
}

// dropUnknownVendors removes shares that reference vendors outside the
// caller's organization before anything is written.
func (h *BudgetHandler) dropUnknownVendors(c echo.Context, subs []models.BudgetSubcategory) {
	var known []uint
	database.DB.Model(&models.Vendor{}).Where("organization_id = ?", orgID(c)).Pluck("id", &known)
	knownSet := make(map[uint]struct{}, len(known))
	for _, id := range known {
		knownSet[id] = struct{}{}
	}
	for i := range subs {
		kept := subs[i].Vendors[:0]
		for _, s := range subs[i].Vendors {
			if _, ok := knownSet[s.VendorID]; ok {
				kept = append(kept, s)
			}
		}
		subs[i].Vendors = kept
	}
}

// buildSubcategories validates and assembles the replacement rows without
// touching the database.
func (h *BudgetHandler) buildSubcategories(c echo.Context, budgetID uint, reqs []SubcategoryReq) ([]models.BudgetSubcategory, error) {
	subs := make([]models.BudgetSubcategory, 0, len(reqs))
	for _, r := range reqs {
		if strings.TrimSpace(r.Name) == "" {
			return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "subcategory name required"})
		}
		if r.EstimatedCents < 0 || r.ActualCents < 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "subcategory amounts must not be negative"})
		}
		sc := models.BudgetSubcategory{
			BudgetID:       budgetID,
			Name:           strings.TrimSpace(r.Name),
			EstimatedCents: r.EstimatedCents,
			ActualCents:    r.ActualCents,
		}
		for _, vs := range r.Vendors {
			sc.Vendors = append(sc.Vendors, models.BudgetVendorShare{
				VendorID:    vs.VendorID,
				AmountCents: vs.AmountCents,
			})
		}
		subs = append(subs, sc)
	}
	h.dropUnknownVendors(c, subs)
	return subs, nil
}

func replaceSubcategories(tx *gorm.DB, budgetID uint, subs []models.BudgetSubcategory) error {
	var oldIDs []uint
	if err := tx.Model(&models.BudgetSubcategory{}).Where("budget_id = ?", budgetID).Pluck("id", &oldIDs).Error; err != nil {
		return err
	}
	if len(oldIDs) > 0 {
		if err := tx.Delete(&models.BudgetVendorShare{}, "subcategory_id IN ?", oldIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.BudgetSubcategory{}, "id IN ?", oldIDs).Error; err != nil {
			return err
		}
	}
	if len(subs) > 0 {
		return tx.Create(&subs).Error
	}
	return nil
}

func updateVendorShare(tx *gorm.DB, b *models.Budget, subName string, vendorID uint, amountCents int64) error {
	for i := range b.Subcategories {
		if b.Subcategories[i].Name != subName {
			continue
		}
		for j := range b.Subcategories[i].Vendors {
			share := &b.Subcategories[i].Vendors[j]
			if share.VendorID != vendorID {
				continue
			}
			share.AmountCents = amountCents
			return tx.Save(share).Error
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "VENDOR_SHARE_NOT_FOUND"})
}

func toRollupBudgets(budgets []models.Budget) []rollup.Budget {
	out := make([]rollup.Budget, 0, len(budgets))
	for _, b := range budgets {
		rb := rollup.Budget{
			ID:             b.ID,
			Category:       b.Category,
			EstimatedCents: b.EstimatedCents,
			ActualCents:    b.ActualCents,
		}
		for _, sc := range b.Subcategories {
			rs := rollup.Subcategory{
				Name:           sc.Name,
				EstimatedCents: sc.EstimatedCents,
				ActualCents:    sc.ActualCents,
			}
			for _, vs := range sc.Vendors {
				rs.Vendors = append(rs.Vendors, rollup.VendorShare{
					VendorID:    vs.VendorID,
					AmountCents: vs.AmountCents,
				})
			}
			rb.Subcategories = append(rb.Subcategories, rs)
		}
		out = append(out, rb)
	}
	return out
}
