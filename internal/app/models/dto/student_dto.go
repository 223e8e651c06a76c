package dto

import (
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/helpers"
)

// CreateStudentRequest represents a new student. When Vaccinated is true and
// VaccineName is set, a vaccination record is created alongside the student.
type CreateStudentRequest struct {
	Name        string  `json:"name" binding:"required,notblank" example:"Asha"`
	Grade       string  `json:"grade" binding:"required,notblank" example:"5"`
	DOB         *string `json:"dob" binding:"omitempty,datetime=2006-01-02" example:"2014-06-01"`
	Vaccinated  bool    `json:"vaccinated" example:"false"`
	VaccineName *string `json:"vaccine_name" example:"Polio"`
	DriveName   *string `json:"drive_name" example:"Polio 2025"`
}

// UpdateStudentRequest represents the editable student fields
type UpdateStudentRequest struct {
	Name  string  `json:"name" binding:"required,notblank" example:"Asha"`
	Grade string  `json:"grade" binding:"required,notblank" example:"6"`
	DOB   *string `json:"dob" binding:"omitempty,datetime=2006-01-02" example:"2014-06-01"`
}

// RecordVaccinationRequest marks a student as vaccinated
type RecordVaccinationRequest struct {
	VaccineName     string  `json:"vaccine_name" binding:"required,notblank" example:"Polio"`
	DriveName       *string `json:"drive_name" example:"Polio 2025"`
	VaccinationDate *string `json:"vaccination_date" binding:"omitempty,datetime=2006-01-02" example:"2025-05-01"`
}

// StudentCreatedResponse returns the id of a new student
type StudentCreatedResponse struct {
	StudentID int64 `json:"student_id" example:"42"`
}

// VaccinationRecordedResponse returns the id of a new vaccination record
type VaccinationRecordedResponse struct {
	RecordID int64  `json:"record_id" example:"7"`
	Message  string `json:"message" example:"Vaccination status updated"`
}

// StudentResponse represents a student
type StudentResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Grade       string  `json:"grade"`
	DOB         *string `json:"dob"`
	Vaccinated  bool    `json:"vaccinated"`
	VaccineName *string `json:"vaccine_name"`
	DriveName   *string `json:"drive_name"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// VaccinationRecordResponse represents a single vaccination record
type VaccinationRecordResponse struct {
	ID              int64   `json:"id"`
	StudentID       int64   `json:"student_id"`
	VaccineName     string  `json:"vaccine_name"`
	DriveName       *string `json:"drive_name"`
	VaccinationDate string  `json:"vaccination_date"`
}

// StudentDetailResponse is a student with its vaccination history
type StudentDetailResponse struct {
	Student      StudentResponse             `json:"student"`
	Vaccinations []VaccinationRecordResponse `json:"vaccinations"`
}

// StudentSummaryResponse is one search result
type StudentSummaryResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Grade             string  `json:"grade"`
	DOB               *string `json:"dob"`
	VaccinationStatus string  `json:"vaccination_status" example:"Vaccinated"`
}

// BulkImportRowResult reports the outcome of one CSV data row. Row is the
// 1-based line number in the file, the header being line 1.
type BulkImportRowResult struct {
	Row       int    `json:"row" example:"2"`
	Status    string `json:"status" example:"imported"`
	StudentID *int64 `json:"student_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BulkImportResponse summarises a bulk upload
type BulkImportResponse struct {
	Mode      string                `json:"mode" example:"best_effort"`
	TotalRows int                   `json:"total_rows"`
	Imported  int                   `json:"imported"`
	Failed    int                   `json:"failed"`
	Results   []BulkImportRowResult `json:"results"`
}

// NewStudentResponse converts a student model.
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:          s.ID,
		Name:        s.Name,
		Grade:       s.Grade,
		DOB:         helpers.FormatOptionalDate(s.DateOfBirth),
		Vaccinated:  s.Vaccinated,
		VaccineName: s.VaccineName,
		DriveName:   s.DriveName,
		CreatedAt:   s.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   s.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// NewVaccinationRecordResponse converts a vaccination record model.
func NewVaccinationRecordResponse(r *models.VaccinationRecord) VaccinationRecordResponse {
	return VaccinationRecordResponse{
		ID:              r.ID,
		StudentID:       r.StudentID,
		VaccineName:     r.VaccineName,
		DriveName:       r.DriveName,
		VaccinationDate: r.VaccinationDate.Format(helpers.DateLayout),
	}
}

// NewStudentSummaryResponse converts a search row.
func NewStudentSummaryResponse(s *models.StudentSummary) StudentSummaryResponse {
	return StudentSummaryResponse{
		ID:                s.ID,
		Name:              s.Name,
		Grade:             s.Grade,
		DOB:               helpers.FormatOptionalDate(s.DateOfBirth),
		VaccinationStatus: s.VaccinationStatus,
	}
}
