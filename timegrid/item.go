package timegrid

// Item is one schedulable unit placed on the grid. It is a transient
// projection of a task or event record, rebuilt on every calendar fetch; the
// underlying record stays the source of truth and receives any drag result.
type Item struct {
	ID       string `json:"id"`        // display id, "task-<n>" / "event-<n>"
	SourceID uint   `json:"source_id"` // id of the underlying record
	Type     string `json:"type"`      // task | event
	Title    string `json:"title"`

	StartDate string `json:"start_date"`           // YYYY-MM-DD
	StartTime string `json:"start_time,omitempty"` // HH:MM, empty when flexible
	EndTime   string `json:"end_time,omitempty"`

	// Flexible items are excluded from the time grid and listed as
	// unscheduled instead; they must never be positioned by the mapper.
	Flexible bool `json:"is_flexible"`

	Vendors []uint `json:"vendors"`
	Phase   string `json:"phase,omitempty"` // color-coding only, not a scheduling input
	Color   string `json:"color"`
}

var itemPalette = []string{"#2563EB", "#CA8A04", "#9333EA", "#DB2777", "#EA580C"}

// ColorForID picks a stable card color from the display id.
func ColorForID(id string) string {
	sum := 0
	for _, c := range id {
		sum += int(c)
	}
	return itemPalette[sum%len(itemPalette)]
}
