package schema

// ContentVersionTable represents the 'content.version' table
type ContentVersionTable struct {
	Table     string
	ID        string
	EntryID   string
	Version   string
	Slug      string
	Status    string
	Data      string
	SortOrder string
	CreatedBy string
	CreatedAt string
}

// ContentVersion is the schema definition for content.version
var ContentVersion = ContentVersionTable{
	Table:     "content.version",
	ID:        "id",
	EntryID:   "entryid",
	Version:   "version",
	Slug:      "slug",
	Status:    "status",
	Data:      "data",
	SortOrder: "sortorder",
	CreatedBy: "createdby",
	CreatedAt: "createdat",
}

func (t ContentVersionTable) Columns() []string {
	return []string{t.ID, t.EntryID, t.Version, t.Slug, t.Status, t.Data, t.SortOrder, t.CreatedBy, t.CreatedAt}
}
