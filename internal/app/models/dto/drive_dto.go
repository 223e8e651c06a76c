package dto

import (
	"time"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/helpers"
)

const timestampLayout = time.RFC3339

// DriveRequest is the payload for creating or updating a drive.
// ApplicableGrades is a comma separated list such as "5,6".
type DriveRequest struct {
	DriveName        string `json:"drive_name" binding:"required,notblank" example:"Flu Shot 2025"`
	VaccineName      string `json:"vaccine_name" binding:"required,notblank" example:"Flu"`
	DriveDate        string `json:"drive_date" binding:"required,datetime=2006-01-02" example:"2025-07-01"`
	AvailableDoses   *int   `json:"available_doses" binding:"required,min=0" example:"100"`
	ApplicableGrades string `json:"applicable_grades" binding:"required,notblank" example:"5,6"`
}

// DriveCreatedResponse returns the id of a new drive
type DriveCreatedResponse struct {
	DriveID int64 `json:"drive_id" example:"3"`
}

// DriveResponse represents a vaccination drive
type DriveResponse struct {
	ID               int64  `json:"id"`
	DriveName        string `json:"drive_name"`
	VaccineName      string `json:"vaccine_name"`
	DriveDate        string `json:"drive_date" example:"2025-07-01"`
	AvailableDoses   int    `json:"available_doses"`
	ApplicableGrades string `json:"applicable_grades" example:"5,6"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// NewDriveResponse converts a drive model.
func NewDriveResponse(d *models.VaccinationDrive) DriveResponse {
	return DriveResponse{
		ID:               d.ID,
		DriveName:        d.DriveName,
		VaccineName:      d.VaccineName,
		DriveDate:        helpers.FormatDate(&d.DriveDate),
		AvailableDoses:   d.AvailableDoses,
		ApplicableGrades: d.ApplicableGrades,
		CreatedAt:        d.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:        d.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// NewDriveResponses converts a list of drives.
func NewDriveResponses(drives []models.VaccinationDrive) []DriveResponse {
	out := make([]DriveResponse, 0, len(drives))
	for i := range drives {
		out = append(out, NewDriveResponse(&drives[i]))
	}
	return out
}
