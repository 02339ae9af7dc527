package schema

// ContentDocumentTable represents the 'content.document' table
type ContentDocumentTable struct {
	Table      string
	ID         string
	Title      string
	Category   string
	FilePath   string
	UploadedBy string
}

// ContentDocument is the schema definition for content.document
var ContentDocument = ContentDocumentTable{
	Table:      "content.document",
	ID:         "docid",
	Title:      "title",
	Category:   "category",
	FilePath:   "filepath",
	UploadedBy: "uploadedby",
}
