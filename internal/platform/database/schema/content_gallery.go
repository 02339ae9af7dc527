package schema

// ContentGalleryTable represents the 'content.gallery' table
type ContentGalleryTable struct {
	Table      string
	ID         string
	Caption    string
	FilePath   string
	Type       string
	UploadDate string
}

// ContentGallery is the schema definition for content.gallery
var ContentGallery = ContentGalleryTable{
	Table:      "content.gallery",
	ID:         "mediaid",
	Caption:    "caption",
	FilePath:   "filepath",
	Type:       "type",
	UploadDate: "uploaddate",
}
