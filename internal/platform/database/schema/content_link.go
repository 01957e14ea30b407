package schema

// ContentLinkTable represents the 'content.link' table
type ContentLinkTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	Type        string
	Payload     string
	IsVisible   string
	IsSpotlight string
	SortOrder   string
	Clicks      string
	CreatedAt   string
	UpdatedAt   string
}

// ContentLink is the schema definition for content.link
var ContentLink = ContentLinkTable{
	Table:       "content.link",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	Type:        "type",
	Payload:     "payload",
	IsVisible:   "isvisible",
	IsSpotlight: "isspotlight",
	SortOrder:   "sortorder",
	Clicks:      "clicks",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names in scan order
func (t ContentLinkTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Type, t.Payload, t.IsVisible,
		t.IsSpotlight, t.SortOrder, t.Clicks, t.CreatedAt, t.UpdatedAt,
	}
}
