package dto

// SubmissionAccepted is returned once a submission is queued.
type SubmissionAccepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
