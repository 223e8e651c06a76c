package models

import (
	"time"
)

// Student defines the student model based on the 'students' table.
// Vaccinated, VaccineName and DriveName are denormalised from the student's
// most recent vaccination record and written in the same transaction as it.
type Student struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Grade       string     `json:"grade" db:"grade"`
	DateOfBirth *time.Time `json:"dob,omitempty" db:"dob"`
	Vaccinated  bool       `json:"vaccinated" db:"vaccinated"`
	VaccineName *string    `json:"vaccine_name,omitempty" db:"vaccine_name"`
	DriveName   *string    `json:"drive_name,omitempty" db:"drive_name"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// StudentSummary is a search result row; status is derived from record existence.
type StudentSummary struct {
	ID                int64      `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Grade             string     `json:"grade" db:"grade"`
	DateOfBirth       *time.Time `json:"dob,omitempty" db:"dob"`
	VaccinationStatus string     `json:"vaccination_status" db:"vaccination_status"`
}
