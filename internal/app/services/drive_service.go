package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/helpers"
)

// DefaultDriveLeadDays is the minimum number of days between scheduling a drive and holding it.
const DefaultDriveLeadDays = 15

// DriveService handles vaccination drive scheduling
type DriveService interface {
	CreateDrive(ctx context.Context, req *dto.DriveRequest) (int64, error)
	UpdateDrive(ctx context.Context, id int64, req *dto.DriveRequest) error
	GetDrive(ctx context.Context, id int64) (*dto.DriveResponse, error)
	ListDrives(ctx context.Context) ([]dto.DriveResponse, error)
}

type driveServiceImpl struct {
	driveRepo repositories.IDriveRepository
	leadDays  int
	now       Clock
	logger    zerolog.Logger
}

// NewDriveService creates a new DriveService. leadDays below zero falls back to the default.
func NewDriveService(driveRepo repositories.IDriveRepository, leadDays int, now Clock, logger zerolog.Logger) DriveService {
	if leadDays < 0 {
		leadDays = DefaultDriveLeadDays
	}
	return &driveServiceImpl{
		driveRepo: driveRepo,
		leadDays:  leadDays,
		now:       clockOrDefault(now),
		logger:    logger,
	}
}

// CreateDrive schedules a drive at least leadDays after today. Duplicate
// drives are detected by the storage constraint, not by a pre-check.
func (s *driveServiceImpl) CreateDrive(ctx context.Context, req *dto.DriveRequest) (int64, error) {
	drive, err := driveFromRequest(req)
	if err != nil {
		return 0, err
	}

	earliest := helpers.StartOfDay(s.now()).AddDate(0, 0, s.leadDays)
	if drive.DriveDate.Before(earliest) {
		return 0, apperrors.NewCustomError(apperrors.ErrInvalidSchedule,
			fmt.Sprintf("Drive date must be at least %d days in the future.", s.leadDays))
	}

	id, err := s.driveRepo.Create(ctx, drive)
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("driveID", id).
		Str("vaccine", drive.VaccineName).
		Str("date", helpers.FormatDate(&drive.DriveDate)).
		Msg("Vaccination drive scheduled")
	return id, nil
}

// UpdateDrive overwrites a drive that has not happened yet. A drive whose
// stored date is before now is locked, so a drive is read-only from its own day on.
func (s *driveServiceImpl) UpdateDrive(ctx context.Context, id int64, req *dto.DriveRequest) error {
	existing, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := s.now()
	if existing.DriveDate.Before(now) {
		return apperrors.ErrPastDrive
	}

	drive, err := driveFromRequest(req)
	if err != nil {
		return err
	}

	if drive.DriveDate.Before(helpers.StartOfDay(now)) {
		return apperrors.NewCustomError(apperrors.ErrInvalidSchedule, "Drive date cannot be in the past.")
	}

	drive.ID = id
	if err := s.driveRepo.Update(ctx, drive); err != nil {
		return err
	}

	s.logger.Info().Int64("driveID", id).Msg("Vaccination drive updated")
	return nil
}

// GetDrive returns a single drive
func (s *driveServiceImpl) GetDrive(ctx context.Context, id int64) (*dto.DriveResponse, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewDriveResponse(drive)
	return &resp, nil
}

// ListDrives returns every drive ordered by date
func (s *driveServiceImpl) ListDrives(ctx context.Context) ([]dto.DriveResponse, error) {
	drives, err := s.driveRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDriveResponses(drives), nil
}

func driveFromRequest(req *dto.DriveRequest) (*models.VaccinationDrive, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	name := strings.TrimSpace(req.DriveName)
	vaccine := strings.TrimSpace(req.VaccineName)
	if name == "" || vaccine == "" || req.AvailableDoses == nil || strings.TrimSpace(req.DriveDate) == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	if *req.AvailableDoses < 0 {
		return nil, apperrors.NewValidationError("Available doses must not be negative")
	}

	date, err := helpers.ParseDate(req.DriveDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Drive date must be in YYYY-MM-DD format")
	}

	grades, err := CanonicalGrades(req.ApplicableGrades)
	if err != nil {
		return nil, err
	}

	return &models.VaccinationDrive{
		DriveName:        name,
		VaccineName:      vaccine,
		DriveDate:        date,
		AvailableDoses:   *req.AvailableDoses,
		ApplicableGrades: grades,
	}, nil
}

// CanonicalGrades trims, de-duplicates and sorts a comma separated grade
// list so equivalent lists compare equal in storage. Numeric grades sort
// numerically ahead of named ones.
func CanonicalGrades(raw string) (string, error) {
	seen := make(map[string]struct{})
	grades := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		g := strings.TrimSpace(part)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		grades = append(grades, g)
	}

	if len(grades) == 0 {
		return "", apperrors.NewValidationError("Applicable grades must list at least one grade")
	}

	sort.SliceStable(grades, func(i, j int) bool {
		a, aNum := gradeNumber(grades[i])
		b, bNum := gradeNumber(grades[j])
		switch {
		case aNum && bNum:
			if a != b {
				return a < b
			}
			return grades[i] < grades[j]
		case aNum != bNum:
			return aNum
		default:
			return grades[i] < grades[j]
		}
	})

	return strings.Join(grades, ","), nil
}

func gradeNumber(g string) (int, bool) {
	n := 0
	for _, r := range g {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// upcomingWindow returns the inclusive date range [today, today+days].
func upcomingWindow(now time.Time, days int) (time.Time, time.Time) {
	today := helpers.StartOfDay(now)
	return today, today.AddDate(0, 0, days)
}
