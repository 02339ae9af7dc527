package schema

// ContentNoticeTable represents the 'content.notice' table
type ContentNoticeTable struct {
	Table            string
	ID               string
	Title            string
	Content          string
	PublishDate      string
	ExpiryDate       string
	DocumentFilePath string
	CreatedBy        string
	Status           string
}

// ContentNotice is the schema definition for content.notice
var ContentNotice = ContentNoticeTable{
	Table:            "content.notice",
	ID:               "noticeid",
	Title:            "title",
	Content:          "content",
	PublishDate:      "publishdate",
	ExpiryDate:       "expirydate",
	DocumentFilePath: "documentfilepath",
	CreatedBy:        "createdby",
	Status:           "status",
}
