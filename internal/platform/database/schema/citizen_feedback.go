package schema

// CitizenFeedbackTable represents the 'citizen.feedback' table
type CitizenFeedbackTable struct {
	Table         string
	ID            string
	Subject       string
	Message       string
	CitizenUser   string
	CitizenName   string
	CitizenEmail  string
	SubmittedDate string
	Status        string
}

// CitizenFeedback is the schema definition for citizen.feedback
var CitizenFeedback = CitizenFeedbackTable{
	Table:         "citizen.feedback",
	ID:            "feedbackid",
	Subject:       "subject",
	Message:       "message",
	CitizenUser:   "citizenuser",
	CitizenName:   "citizenname",
	CitizenEmail:  "citizenemail",
	SubmittedDate: "submitteddate",
	Status:        "status",
}
