package models

// Attempt is the client-local working state of one pass through a quiz. The
// server-issued AttemptID stays empty until the start call is acknowledged.
type Attempt struct {
	QuizID        string      `bson:"quiz_id" json:"quiz_id"`
	SessionID     string      `bson:"session_id" json:"session_id"`
	AttemptID     string      `bson:"attempt_id" json:"attempt_id"`
	Answers       map[int]int `bson:"-" json:"answers"`
	AttemptNumber int         `bson:"attempt_number" json:"attempt_number"`
}

// SubmittedAnswer is one entry of the submit payload, naming the chosen
// option by id rather than index.
type SubmittedAnswer struct {
	QuestionID       string `bson:"question_id" json:"question_id"`
	SelectedOptionID string `bson:"selected_option_id" json:"selected_option_id"`
}
