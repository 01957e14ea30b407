package schema

// ContentFileTable represents the 'content.file' table
type ContentFileTable struct {
	Table      string
	ID         string
	OwnerID    string
	Name       string
	Type       string
	Content    string
	MimeType   string
	Size       string
	Views      string
	StorageKey string
	CreatedAt  string
	UpdatedAt  string
}

// ContentFile is the schema definition for content.file
var ContentFile = ContentFileTable{
	Table:      "content.file",
	ID:         "id",
	OwnerID:    "ownerid",
	Name:       "name",
	Type:       "type",
	Content:    "content",
	MimeType:   "mimetype",
	Size:       "size",
	Views:      "views",
	StorageKey: "storagekey",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// MetaColumns returns the column names of a file row without its content, in scan order
func (t ContentFileTable) MetaColumns() []string {
	return []string{
		t.ID, t.OwnerID, t.Name, t.Type, t.MimeType, t.Size, t.Views, t.StorageKey, t.CreatedAt, t.UpdatedAt,
	}
}
