package models

import (
	"time"
)

// VaccinationDrive defines the drive model based on the 'vaccination_drives' table
type VaccinationDrive struct {
	ID               int64     `json:"id" db:"id"`
	DriveName        string    `json:"drive_name" db:"drive_name"`
	VaccineName      string    `json:"vaccine_name" db:"vaccine_name"`
	DriveDate        time.Time `json:"drive_date" db:"drive_date"`
	AvailableDoses   int       `json:"available_doses" db:"available_doses"`
	ApplicableGrades string    `json:"applicable_grades" db:"applicable_grades"` // canonical, comma joined
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
