package schema

// MediaItemTable represents the 'media.item' table
type MediaItemTable struct {
	Table        string
	ID           string
	FileName     string
	OriginalName string
	MimeType     string
	Size         string
	Width        string
	Height       string
	AltText      string
	Folder       string
	StorageKey   string
	URL          string
	UploadedBy   string
	CreatedAt    string
}

// MediaItem is the schema definition for media.item
var MediaItem = MediaItemTable{
	Table:        "media.item",
	ID:           "id",
	FileName:     "filename",
	OriginalName: "originalname",
	MimeType:     "mimetype",
	Size:         "size",
	Width:        "width",
	Height:       "height",
	AltText:      "alttext",
	Folder:       "folder",
	StorageKey:   "storagekey",
	URL:          "url",
	UploadedBy:   "uploadedby",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t MediaItemTable) Columns() []string {
	return []string{
		t.ID, t.FileName, t.OriginalName, t.MimeType, t.Size, t.Width, t.Height,
		t.AltText, t.Folder, t.StorageKey, t.URL, t.UploadedBy, t.CreatedAt,
	}
}
