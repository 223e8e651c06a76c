package services

import (
	"context"
	"math"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
)

// DefaultUpcomingWindowDays is how far ahead the dashboard looks for drives.
const DefaultUpcomingWindowDays = 30

// DashboardService computes the dashboard overview
type DashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardOverviewResponse, error)
}

type dashboardServiceImpl struct {
	reportRepo repositories.IReportRepository
	driveRepo  repositories.IDriveRepository
	windowDays int
	now        Clock
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(reportRepo repositories.IReportRepository, driveRepo repositories.IDriveRepository, windowDays int, now Clock) DashboardService {
	if windowDays < 0 {
		windowDays = DefaultUpcomingWindowDays
	}
	return &dashboardServiceImpl{
		reportRepo: reportRepo,
		driveRepo:  driveRepo,
		windowDays: windowDays,
		now:        clockOrDefault(now),
	}
}

// Overview returns student totals, the vaccinated share and drives in the
// next windowDays days, today included.
func (s *dashboardServiceImpl) Overview(ctx context.Context) (*dto.DashboardOverviewResponse, error) {
	total, vaccinated, err := s.reportRepo.StudentCounts(ctx)
	if err != nil {
		return nil, err
	}

	from, to := upcomingWindow(s.now(), s.windowDays)
	drives, err := s.driveRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardOverviewResponse{
		TotalStudents:         total,
		VaccinatedStudents:    vaccinated,
		VaccinationPercentage: VaccinationPercentage(vaccinated, total),
		UpcomingDrives:        dto.NewDriveResponses(drives),
	}, nil
}

// VaccinationPercentage returns vaccinated/total as a percentage rounded to
// two decimals, or 0 when there are no students.
func VaccinationPercentage(vaccinated, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(vaccinated)/float64(total)*100*100) / 100
}
