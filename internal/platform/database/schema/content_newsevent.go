package schema

// ContentNewsEventTable represents the 'content.newsevent' table
type ContentNewsEventTable struct {
	Table     string
	ID        string
	Title     string
	Body      string
	EventDate string
	Type      string
	CreatedBy string
}

// ContentNewsEvent is the schema definition for content.newsevent
var ContentNewsEvent = ContentNewsEventTable{
	Table:     "content.newsevent",
	ID:        "newseventid",
	Title:     "title",
	Body:      "body",
	EventDate: "eventdate",
	Type:      "type",
	CreatedBy: "createdby",
}
