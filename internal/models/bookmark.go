package models

import "time"

// Bookmark associates a user with a catalog program.
type Bookmark struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	ProgramID int       `db:"program_id" json:"program_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DeadlineReminder flags a bookmarked program whose deadline is close.
type DeadlineReminder struct {
	ProgramID int    `json:"program_id"`
	Title     string `json:"title"`
	Deadline  string `json:"deadline"`
	DaysUntil int    `json:"days_until"`
	Message   string `json:"message"`
}
