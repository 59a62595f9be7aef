package schema

// ContentEntryTable represents the 'content.entry' table
type ContentEntryTable struct {
	Table       string
	ID          string
	ContentType string
	Slug        string
	Status      string
	Data        string
	SortOrder   string
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   string
	UpdatedAt   string
}

// ContentEntry is the schema definition for content.entry
var ContentEntry = ContentEntryTable{
	Table:       "content.entry",
	ID:          "id",
	ContentType: "contenttype",
	Slug:        "slug",
	Status:      "status",
	Data:        "data",
	SortOrder:   "sortorder",
	CreatedBy:   "createdby",
	UpdatedBy:   "updatedby",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t ContentEntryTable) Columns() []string {
	return []string{
		t.ID, t.ContentType, t.Slug, t.Status, t.Data, t.SortOrder,
		t.CreatedBy, t.UpdatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
