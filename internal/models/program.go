package models

import (
	"strings"
	"time"
)

// AllStates marks a program as nationally available. It satisfies every state filter.
const AllStates = "All States"

// DeadlineLayout is the ISO calendar date format used for program deadlines.
const DeadlineLayout = "2006-01-02"

// Program categories. A program may also carry no category at all.
const (
	CategorySummerProgram         = "Summer Program"
	CategoryAcademicProgram       = "Academic Program"
	CategoryCompetition           = "Competition"
	CategoryLeadershipOpportunity = "Leadership Opportunity"
	CategoryVolunteerOpportunity  = "Volunteer Opportunity"
)

// Categories lists the catalog categories in display order.
var Categories = []string{
	CategorySummerProgram,
	CategoryAcademicProgram,
	CategoryCompetition,
	CategoryLeadershipOpportunity,
	CategoryVolunteerOpportunity,
}

// Grades are the eligible high-school grades.
var Grades = []int{9, 10, 11, 12}

// USStates lists the 50 state names in alphabetical order.
var USStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
	"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
	"South Dakota", "Tennessee", "Texas", "Utah", "Vermont", "Virginia",
	"Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// FieldVocabulary is the set of subject tags offered on the submission form.
// Catalog programs may carry tags outside of it.
var FieldVocabulary = []string{
	"Computer Science & Technology",
	"Healthcare & Medicine",
	"Engineering",
	"Business & Entrepreneurship",
	"Law & Legal Studies",
	"Environmental Science",
	"Visual Arts",
	"Performing Arts",
	"Writing & Literature",
	"Social Sciences",
	"Public Health",
	"Education",
	"Communications & Media",
	"Mathematics",
	"Life Sciences",
	"Community Service",
	"Leadership & Civic Engagement",
}

// Program is one catalog entry. Programs are immutable once loaded.
type Program struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category,omitempty"`
	State       string   `json:"state"`
	Description string   `json:"description"`
	GradeLevel  []int    `json:"grade_level"`
	Fields      []string `json:"fields"`
	Deadline    string   `json:"deadline"`
	Cost        string   `json:"cost"`
	Duration    string   `json:"duration"`
	Website     string   `json:"website"`
}

// IsNational reports whether the program is available in every state.
func (p Program) IsNational() bool {
	return p.State == AllStates
}

// HasGrade reports whether grade is eligible.
func (p Program) HasGrade(grade int) bool {
	for _, g := range p.GradeLevel {
		if g == grade {
			return true
		}
	}
	return false
}

// HasField reports whether the program carries tag exactly.
func (p Program) HasField(tag string) bool {
	for _, f := range p.Fields {
		if f == tag {
			return true
		}
	}
	return false
}

// IsFree mirrors the card highlight: any cost text mentioning "free".
func (p Program) IsFree() bool {
	return strings.Contains(strings.ToLower(p.Cost), "free")
}

// DeadlineDate parses the deadline as a UTC calendar date.
func (p Program) DeadlineDate() (time.Time, error) {
	return time.Parse(DeadlineLayout, p.Deadline)
}

// IsUSState reports whether name is one of the 50 states.
func IsUSState(name string) bool {
	for _, s := range USStates {
		if s == name {
			return true
		}
	}
	return false
}

// IsCategory reports whether name is a known catalog category.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
