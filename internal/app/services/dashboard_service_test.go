package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardOverview_Empty(t *testing.T) {
	store := newMemStore(today())
	svc := NewDashboardService(memReportRepo{store}, memDriveRepo{store}, DefaultUpcomingWindowDays, fixedClock)

	got, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalStudents)
	assert.Zero(t, got.VaccinatedStudents)
	assert.Zero(t, got.VaccinationPercentage)
	assert.NotNil(t, got.UpcomingDrives)
	assert.Empty(t, got.UpcomingDrives)
}

func TestDashboardOverview_CountsAndWindow(t *testing.T) {
	store := newMemStore(today())
	a := store.addStudent("Asha", "5")
	store.addStudent("Ravi", "5")
	store.addStudent("Meena", "6")
	store.addRecord(a, "Polio")
	store.addRecord(a, "MMR")

	store.addDrive("Yesterday", "Flu", today().AddDate(0, 0, -1), "5")
	store.addDrive("Today", "Flu", today(), "5")
	store.addDrive("Last day", "Flu", today().AddDate(0, 0, 30), "6")
	store.addDrive("Too far", "Flu", today().AddDate(0, 0, 31), "7")

	svc := NewDashboardService(memReportRepo{store}, memDriveRepo{store}, DefaultUpcomingWindowDays, fixedClock)
	got, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, got.TotalStudents)
	assert.EqualValues(t, 1, got.VaccinatedStudents)
	assert.Equal(t, 33.33, got.VaccinationPercentage)

	require.Len(t, got.UpcomingDrives, 2)
	assert.Equal(t, "Today", got.UpcomingDrives[0].DriveName)
	assert.Equal(t, day(0), got.UpcomingDrives[0].DriveDate)
	assert.Equal(t, "Last day", got.UpcomingDrives[1].DriveName)
	assert.Equal(t, day(30), got.UpcomingDrives[1].DriveDate)
}

func TestVaccinationPercentage(t *testing.T) {
	cases := []struct {
		vaccinated, total int64
		want              float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{45, 120, 37.5},
		{5, 5, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, VaccinationPercentage(tc.vaccinated, tc.total))
	}
}
