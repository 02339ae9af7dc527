package schema

// ContentTenderTable represents the 'content.tender' table
type ContentTenderTable struct {
	Table              string
	ID                 string
	Title              string
	Description        string
	DocumentPath       string
	SubmissionDeadline string
	OpeningDate        string
}

// ContentTender is the schema definition for content.tender
var ContentTender = ContentTenderTable{
	Table:              "content.tender",
	ID:                 "tenderid",
	Title:              "title",
	Description:        "description",
	DocumentPath:       "tenderdocumentpath",
	SubmissionDeadline: "submissiondeadline",
	OpeningDate:        "openingdate",
}
