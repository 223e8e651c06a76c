package dto

import (
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/helpers"
)

// DashboardOverviewResponse holds the dashboard aggregates
type DashboardOverviewResponse struct {
	TotalStudents         int64           `json:"total_students" example:"120"`
	VaccinatedStudents    int64           `json:"vaccinated_students" example:"45"`
	VaccinationPercentage float64         `json:"vaccination_percentage" example:"37.5"`
	UpcomingDrives        []DriveResponse `json:"upcoming_drives"`
}

// ReportRowResponse is one report line
type ReportRowResponse struct {
	StudentID       int64   `json:"student_id"`
	StudentName     string  `json:"student_name"`
	StudentClass    string  `json:"student_class"`
	VaccineName     *string `json:"vaccine_name"`
	DriveName       *string `json:"drive_name"`
	VaccinationDate *string `json:"vaccination_date"`
	Vaccinated      bool    `json:"vaccinated"`
}

// ReportPageResponse is a page of report rows with pagination metadata
type ReportPageResponse struct {
	Data         []ReportRowResponse `json:"data"`
	TotalRecords int64               `json:"total_records" example:"25"`
	CurrentPage  int                 `json:"current_page" example:"1"`
	TotalPages   int                 `json:"total_pages" example:"3"`
	Limit        int                 `json:"limit" example:"10"`
}

// NewReportRowResponses converts report rows.
func NewReportRowResponses(rows []models.ReportRow) []ReportRowResponse {
	out := make([]ReportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ReportRowResponse{
			StudentID:       r.StudentID,
			StudentName:     r.StudentName,
			StudentClass:    r.StudentClass,
			VaccineName:     r.VaccineName,
			DriveName:       r.DriveName,
			VaccinationDate: helpers.FormatOptionalDate(r.VaccinationDate),
			Vaccinated:      r.Vaccinated,
		})
	}
	return out
}
