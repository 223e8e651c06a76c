package models

import (
	"time"
)

// VaccinationRecord defines one vaccine administered to one student
type VaccinationRecord struct {
	ID              int64     `json:"id" db:"id"`
	StudentID       int64     `json:"student_id" db:"student_id"`
	VaccineName     string    `json:"vaccine_name" db:"vaccine_name"`
	DriveName       *string   `json:"drive_name,omitempty" db:"drive_name"`
	VaccinationDate time.Time `json:"vaccination_date" db:"vaccination_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ReportRow is one line of the vaccination report: a student joined with one
// of its records, or with none.
type ReportRow struct {
	StudentID       int64      `json:"student_id"`
	StudentName     string     `json:"student_name"`
	StudentClass    string     `json:"student_class"`
	VaccineName     *string    `json:"vaccine_name"`
	DriveName       *string    `json:"drive_name"`
	VaccinationDate *time.Time `json:"vaccination_date"`
	Vaccinated      bool       `json:"vaccinated"`
}
