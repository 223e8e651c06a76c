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

// VaccinationService records vaccinations against students
type VaccinationService interface {
	RecordVaccination(ctx context.Context, studentID int64, req *dto.RecordVaccinationRequest) (int64, error)
}

type vaccinationServiceImpl struct {
	tx          repositories.Transactor
	studentRepo repositories.IStudentRepository
	recordRepo  repositories.IVaccinationRecordRepository
	logger      zerolog.Logger
}

// NewVaccinationService creates a new VaccinationService
func NewVaccinationService(
	tx repositories.Transactor,
	studentRepo repositories.IStudentRepository,
	recordRepo repositories.IVaccinationRecordRepository,
	logger zerolog.Logger,
) VaccinationService {
	return &vaccinationServiceImpl{
		tx:          tx,
		studentRepo: studentRepo,
		recordRepo:  recordRepo,
		logger:      logger,
	}
}

// RecordVaccination stores a vaccination record and updates the student's
// vaccination columns in one transaction. A second record for the same
// student and vaccine is rejected by the storage constraint.
func (s *vaccinationServiceImpl) RecordVaccination(ctx context.Context, studentID int64, req *dto.RecordVaccinationRequest) (int64, error) {
	exists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrStudentNotFound
	}

	record, err := recordFromRequest(studentID, req)
	if err != nil {
		return 0, err
	}

	var recordID int64
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		recordID, err = recordVaccination(ctx, s.studentRepo, s.recordRepo, record)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Str("vaccine", record.VaccineName).
		Int64("recordID", recordID).
		Msg("Vaccination recorded")
	return recordID, nil
}

// recordVaccination must run inside a transaction.
func recordVaccination(
	ctx context.Context,
	studentRepo repositories.IStudentRepository,
	recordRepo repositories.IVaccinationRecordRepository,
	record *models.VaccinationRecord,
) (int64, error) {
	id, err := recordRepo.Create(ctx, record)
	if err != nil {
		return 0, err
	}
	if err := studentRepo.MarkVaccinated(ctx, record.StudentID, record.VaccineName, record.DriveName); err != nil {
		return 0, err
	}
	return id, nil
}

func recordFromRequest(studentID int64, req *dto.RecordVaccinationRequest) (*models.VaccinationRecord, error) {
	if req == nil || strings.TrimSpace(req.VaccineName) == "" {
		return nil, apperrors.NewValidationError("Vaccine name is required")
	}

	record := &models.VaccinationRecord{
		StudentID:   studentID,
		VaccineName: strings.TrimSpace(req.VaccineName),
		DriveName:   trimmedOrNil(req.DriveName),
	}

	if req.VaccinationDate != nil {
		date, err := helpers.ParseOptionalDate(*req.VaccinationDate)
		if err != nil {
			return nil, apperrors.NewValidationError("Vaccination date must be in YYYY-MM-DD format")
		}
		if date != nil {
			record.VaccinationDate = *date
		}
	}

	return record, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
