package schema

// ContentSchemeProjectTable represents the 'content.schemeproject' table
type ContentSchemeProjectTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Budget      string
	Type        string
}

// ContentSchemeProject is the schema definition for content.schemeproject
var ContentSchemeProject = ContentSchemeProjectTable{
	Table:       "content.schemeproject",
	ID:          "spid",
	Name:        "name",
	Description: "description",
	StartDate:   "startdate",
	EndDate:     "enddate",
	Budget:      "budget",
	Type:        "type",
}
