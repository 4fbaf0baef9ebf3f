package models

import (
	"time"

	"github.com/lib/pq"
)

// Intake statuses.
const (
	SubmissionStatusPending = "pending"
	ContactStatusUnread     = "unread"
)

// ProgramSubmission is a user-proposed program awaiting manual review.
type ProgramSubmission struct {
	ID               string         `db:"id" json:"id"`
	Title            string         `db:"title" json:"title"`
	Description      string         `db:"description" json:"description"`
	State            string         `db:"state" json:"state"`
	Fields           pq.StringArray `db:"fields" json:"fields"`
	OtherField       string         `db:"other_field" json:"other_field,omitempty"`
	GradeLevel       pq.Int64Array  `db:"grade_level" json:"grade_level"`
	Deadline         string         `db:"deadline" json:"deadline"`
	Cost             string         `db:"cost" json:"cost"`
	Duration         string         `db:"duration" json:"duration"`
	Website          string         `db:"website" json:"website"`
	ContactEmail     string         `db:"contact_email" json:"contact_email"`
	OrganizationName string         `db:"organization_name" json:"organization_name"`
	SubmittedBy      *string        `db:"submitted_by" json:"submitted_by,omitempty"`
	Status           string         `db:"status" json:"status"`
	SubmittedAt      time.Time      `db:"submitted_at" json:"submitted_at"`
}

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Subject     string    `db:"subject" json:"subject"`
	Message     string    `db:"message" json:"message"`
	Status      string    `db:"status" json:"status"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// IntakeFilter narrows the admin intake listings.
type IntakeFilter struct {
	Status string
	Limit  int
}

// OtherField is the submission form's free-form field choice.
const OtherField = "Other"

// SubmissionRequest is the payload of the program submission form.
type SubmissionRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required,max=500"`
	State            string   `json:"state" validate:"required"`
	Fields           []string `json:"fields" validate:"required,min=1,dive,required,max=80"`
	OtherField       string   `json:"other_field" validate:"max=80"`
	GradeLevel       []int    `json:"grade_level" validate:"required,min=1,dive,oneof=9 10 11 12"`
	Deadline         string   `json:"deadline" validate:"required,datetime=2006-01-02"`
	Cost             string   `json:"cost" validate:"required,max=100"`
	Duration         string   `json:"duration" validate:"required,max=100"`
	Website          string   `json:"website" validate:"required,url"`
	ContactEmail     string   `json:"contact_email" validate:"required,email"`
	OrganizationName string   `json:"organization_name" validate:"required,max=200"`
}

// ContactRequest is the payload of the contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
