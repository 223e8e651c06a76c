package services

import "time"

// Services defined in this package:
// - AuthService: verifies credentials and issues access tokens
// - DriveService: schedules and edits vaccination drives
// - StudentService: student records, search and CSV bulk import
// - VaccinationService: records vaccinations against students
// - DashboardService: aggregate vaccination statistics
// - ReportService: paginated vaccination report and exports

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return systemClock
	}
	return c
}
