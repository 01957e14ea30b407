package schema

// ContentPageSettingsTable represents the 'content.pagesettings' table
type ContentPageSettingsTable struct {
	Table            string
	OwnerID          string
	ThemeID          string
	CustomBackground string
	CustomAccent     string
	SEOTitle         string
	SEODescription   string
	SEOKeywords      string
	SEOOGImage       string
	SEOCanonicalURL  string
	Socials          string
	UpdatedAt        string
}

// ContentPageSettings is the schema definition for content.pagesettings
var ContentPageSettings = ContentPageSettingsTable{
	Table:            "content.pagesettings",
	OwnerID:          "ownerid",
	ThemeID:          "themeid",
	CustomBackground: "custombackground",
	CustomAccent:     "customaccent",
	SEOTitle:         "seotitle",
	SEODescription:   "seodescription",
	SEOKeywords:      "seokeywords",
	SEOOGImage:       "seoogimage",
	SEOCanonicalURL:  "seocanonicalurl",
	Socials:          "socials",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names in scan order
func (t ContentPageSettingsTable) Columns() []string {
	return []string{
		t.OwnerID, t.ThemeID, t.CustomBackground, t.CustomAccent, t.SEOTitle, t.SEODescription,
		t.SEOKeywords, t.SEOOGImage, t.SEOCanonicalURL, t.Socials, t.UpdatedAt,
	}
}
