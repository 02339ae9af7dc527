package schema

// CitizenHelplineQueryTable represents the 'citizen.helplinequery' table
type CitizenHelplineQueryTable struct {
	Table         string
	ID            string
	Title         string
	Details       string
	ContactNumber string
	QueryDate     string
	AssignedTo    string
}

// CitizenHelplineQuery is the schema definition for citizen.helplinequery
var CitizenHelplineQuery = CitizenHelplineQueryTable{
	Table:         "citizen.helplinequery",
	ID:            "queryid",
	Title:         "title",
	Details:       "details",
	ContactNumber: "contactnumber",
	QueryDate:     "querydate",
	AssignedTo:    "assignedto",
}
