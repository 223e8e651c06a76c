package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/helpers"
)

// StudentService handles student records
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (int64, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error
	GetStudent(ctx context.Context, id int64) (*dto.StudentDetailResponse, error)
	SearchStudents(ctx context.Context, term string) ([]dto.StudentSummaryResponse, error)
	BulkImport(ctx context.Context, input BulkImportInput) (*dto.BulkImportResponse, error)
}

type studentServiceImpl struct {
	tx          repositories.Transactor
	studentRepo repositories.IStudentRepository
	recordRepo  repositories.IVaccinationRecordRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	tx repositories.Transactor,
	studentRepo repositories.IStudentRepository,
	recordRepo repositories.IVaccinationRecordRepository,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		tx:          tx,
		studentRepo: studentRepo,
		recordRepo:  recordRepo,
		logger:      logger,
	}
}

// newStudent is a validated student plus an optional initial vaccination.
type newStudent struct {
	student *models.Student
	record  *models.VaccinationRecord
}

// CreateStudent inserts a student. A vaccinated student with a vaccine name
// gets its vaccination record in the same transaction.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (int64, error) {
	if req == nil {
		return 0, apperrors.NewValidationError("Name and grade are required")
	}

	dob := ""
	if req.DOB != nil {
		dob = *req.DOB
	}
	input, err := buildNewStudent(req.Name, req.Grade, dob, req.Vaccinated, req.VaccineName, req.DriveName)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		id, err = s.insertStudent(ctx, input)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("studentID", id).Bool("vaccinated", input.record != nil).Msg("Student created")
	return id, nil
}

// insertStudent must run inside a transaction.
func (s *studentServiceImpl) insertStudent(ctx context.Context, input *newStudent) (int64, error) {
	id, err := s.studentRepo.Create(ctx, input.student)
	if err != nil {
		return 0, err
	}

	if input.record != nil {
		input.record.StudentID = id
		if _, err := recordVaccination(ctx, s.studentRepo, s.recordRepo, input.record); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// UpdateStudent overwrites name, grade and date of birth
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error {
	if req == nil {
		return apperrors.NewValidationError("Name and grade are required")
	}

	dob := ""
	if req.DOB != nil {
		dob = *req.DOB
	}
	input, err := buildNewStudent(req.Name, req.Grade, dob, false, nil, nil)
	if err != nil {
		return err
	}

	input.student.ID = id
	if err := s.studentRepo.Update(ctx, input.student); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Msg("Student updated")
	return nil
}

// GetStudent returns a student with its vaccination records. The vaccinated
// flag reflects whether any record exists.
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*dto.StudentDetailResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentDetailResponse{
		Student:      dto.NewStudentResponse(student),
		Vaccinations: make([]dto.VaccinationRecordResponse, 0, len(records)),
	}
	resp.Student.Vaccinated = len(records) > 0
	for i := range records {
		resp.Vaccinations = append(resp.Vaccinations, dto.NewVaccinationRecordResponse(&records[i]))
	}
	return resp, nil
}

// SearchStudents matches name or grade case-insensitively, or the id as text
func (s *studentServiceImpl) SearchStudents(ctx context.Context, term string) ([]dto.StudentSummaryResponse, error) {
	rows, err := s.studentRepo.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentSummaryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewStudentSummaryResponse(&rows[i]))
	}
	return out, nil
}

func buildNewStudent(name, grade, dob string, vaccinated bool, vaccineName, driveName *string) (*newStudent, error) {
	name = strings.TrimSpace(name)
	grade = strings.TrimSpace(grade)
	if name == "" || grade == "" {
		return nil, apperrors.NewValidationError("Name and grade are required")
	}

	birth, err := helpers.ParseOptionalDate(dob)
	if err != nil {
		return nil, apperrors.NewValidationError("Date of birth must be in YYYY-MM-DD format")
	}

	input := &newStudent{
		student: &models.Student{Name: name, Grade: grade, DateOfBirth: birth},
	}

	if vaccinated {
		vaccine := trimmedOrNil(vaccineName)
		if vaccine == nil {
			return nil, apperrors.NewValidationError("Vaccine name is required for a vaccinated student")
		}
		input.record = &models.VaccinationRecord{
			VaccineName: *vaccine,
			DriveName:   trimmedOrNil(driveName),
		}
	}

	return input, nil
}
