package schema

// AnalyticsEventTable represents the 'analytics.event' table
type AnalyticsEventTable struct {
	Table     string
	ID        string
	OwnerID   string
	Type      string
	LinkID    string
	FileID    string
	FormID    string
	Device    string
	Referrer  string
	CreatedAt string
}

// AnalyticsEvent is the schema definition for analytics.event
var AnalyticsEvent = AnalyticsEventTable{
	Table:     "analytics.event",
	ID:        "id",
	OwnerID:   "ownerid",
	Type:      "type",
	LinkID:    "linkid",
	FileID:    "fileid",
	FormID:    "formid",
	Device:    "device",
	Referrer:  "referrer",
	CreatedAt: "createdat",
}

// Columns returns all standard column names in scan order
func (t AnalyticsEventTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Type, t.LinkID, t.FileID, t.FormID, t.Device, t.Referrer, t.CreatedAt}
}
