package schema

// ContentFormTable represents the 'content.form' table
type ContentFormTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	Description string
	Fields      string
	Views       string
	CreatedAt   string
	UpdatedAt   string
}

// ContentForm is the schema definition for content.form
var ContentForm = ContentFormTable{
	Table:       "content.form",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	Description: "description",
	Fields:      "fields",
	Views:       "views",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names in scan order
func (t ContentFormTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Title, t.Description, t.Fields, t.Views, t.CreatedAt, t.UpdatedAt}
}

// ContentFormResponseTable represents the 'content.formresponse' table
type ContentFormResponseTable struct {
	Table     string
	ID        string
	FormID    string
	OwnerID   string
	Answers   string
	CreatedAt string
}

// ContentFormResponse is the schema definition for content.formresponse
var ContentFormResponse = ContentFormResponseTable{
	Table:     "content.formresponse",
	ID:        "id",
	FormID:    "formid",
	OwnerID:   "ownerid",
	Answers:   "answers",
	CreatedAt: "createdat",
}

// Columns returns all standard column names in scan order
func (t ContentFormResponseTable) Columns() []string {
	return []string{t.ID, t.FormID, t.OwnerID, t.Answers, t.CreatedAt}
}
