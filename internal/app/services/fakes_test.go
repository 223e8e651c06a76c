package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for PostgreSQL. It reproduces the two
// unique constraints and rolls every map back when a transaction fails.
type memStore struct {
	mu       sync.Mutex
	today    time.Time
	nextID   int64
	users    map[string]models.User
	students map[int64]models.Student
	drives   map[int64]models.VaccinationDrive
	records  map[int64]models.VaccinationRecord

	// failMarkVaccinated makes MarkVaccinated fail, to exercise rollback.
	failMarkVaccinated error
	txCount            int
}

func newMemStore(today time.Time) *memStore {
	return &memStore{
		today:    today,
		users:    map[string]models.User{},
		students: map[int64]models.Student{},
		drives:   map[int64]models.VaccinationDrive{},
		records:  map[int64]models.VaccinationRecord{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type memSnapshot struct {
	nextID   int64
	students map[int64]models.Student
	drives   map[int64]models.VaccinationDrive
	records  map[int64]models.VaccinationRecord
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		nextID:   m.nextID,
		students: make(map[int64]models.Student, len(m.students)),
		drives:   make(map[int64]models.VaccinationDrive, len(m.drives)),
		records:  make(map[int64]models.VaccinationRecord, len(m.records)),
	}
	for k, v := range m.students {
		s.students[k] = v
	}
	for k, v := range m.drives {
		s.drives[k] = v
	}
	for k, v := range m.records {
		s.records[k] = v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.nextID = s.nextID
	m.students = s.students
	m.drives = s.drives
	m.records = s.records
}

type memTxKey struct{}

// InTx implements repositories.Transactor.
func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	snap := m.snapshot()
	m.txCount++
	m.mu.Unlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.mu.Lock()
		m.restore(snap)
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) addStudent(name, grade string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.students[id] = models.Student{ID: id, Name: name, Grade: grade}
	return id
}

func (m *memStore) addRecord(studentID int64, vaccine string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.records[id] = models.VaccinationRecord{ID: id, StudentID: studentID, VaccineName: vaccine, VaccinationDate: m.today}
}

func (m *memStore) addDrive(name, vaccine string, date time.Time, grades string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.drives[id] = models.VaccinationDrive{ID: id, DriveName: name, VaccineName: vaccine, DriveDate: date, ApplicableGrades: grades}
	return id
}

// --- users ---

type memUserRepo struct{ *memStore }

func (r memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("user not found")
	}
	return &u, nil
}

func (r memUserRepo) CreateIfAbsent(_ context.Context, user *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return false, nil
	}
	user.ID = r.id()
	if user.Role == "" {
		user.Role = models.RoleAdmin
	}
	r.users[user.Username] = *user
	return true, nil
}

// --- students ---

type memStudentRepo struct{ *memStore }

func (r memStudentRepo) Create(_ context.Context, s *models.Student) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	r.students[s.ID] = *s
	return s.ID, nil
}

func (r memStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &s, nil
}

func (r memStudentRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.students[id]
	return ok, nil
}

func (r memStudentRepo) Update(_ context.Context, s *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.students[s.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	existing.Name, existing.Grade, existing.DateOfBirth = s.Name, s.Grade, s.DateOfBirth
	r.students[s.ID] = existing
	return nil
}

func (r memStudentRepo) MarkVaccinated(_ context.Context, id int64, vaccine string, drive *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failMarkVaccinated != nil {
		return r.failMarkVaccinated
	}
	s, ok := r.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Vaccinated = true
	s.VaccineName = &vaccine
	s.DriveName = drive
	r.students[id] = s
	return nil
}

func (r memStudentRepo) Search(_ context.Context, term string) ([]models.StudentSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.StudentSummary, 0)
	for _, s := range r.students {
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.Grade), term) &&
			!strings.Contains(strconv.FormatInt(s.ID, 10), term) {
			continue
		}
		status := models.StatusNotVaccinated
		if r.hasRecord(s.ID) {
			status = models.StatusVaccinated
		}
		out = append(out, models.StudentSummary{ID: s.ID, Name: s.Name, Grade: s.Grade, DateOfBirth: s.DateOfBirth, VaccinationStatus: status})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) hasRecord(studentID int64) bool {
	for _, rec := range m.records {
		if rec.StudentID == studentID {
			return true
		}
	}
	return false
}

// --- drives ---

type memDriveRepo struct{ *memStore }

func (r memDriveRepo) conflicts(d *models.VaccinationDrive) bool {
	for _, other := range r.drives {
		if other.ID != d.ID && other.VaccineName == d.VaccineName &&
			other.DriveDate.Equal(d.DriveDate) && other.ApplicableGrades == d.ApplicableGrades {
			return true
		}
	}
	return false
}

func (r memDriveRepo) Create(_ context.Context, d *models.VaccinationDrive) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicts(d) {
		return 0, apperrors.ErrDuplicateDrive
	}
	d.ID = r.id()
	r.drives[d.ID] = *d
	return d.ID, nil
}

func (r memDriveRepo) GetByID(_ context.Context, id int64) (*models.VaccinationDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	return &d, nil
}

func (r memDriveRepo) Update(_ context.Context, d *models.VaccinationDrive) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drives[d.ID]; !ok {
		return apperrors.ErrDriveNotFound
	}
	if r.conflicts(d) {
		return apperrors.ErrDuplicateDrive
	}
	r.drives[d.ID] = *d
	return nil
}

func (r memDriveRepo) List(ctx context.Context) ([]models.VaccinationDrive, error) {
	return r.ListBetween(ctx, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (r memDriveRepo) ListBetween(_ context.Context, from, to time.Time) ([]models.VaccinationDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.VaccinationDrive, 0)
	for _, d := range r.drives {
		if d.DriveDate.Before(from) || d.DriveDate.After(to) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DriveDate.Equal(out[j].DriveDate) {
			return out[i].DriveDate.Before(out[j].DriveDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// --- vaccination records ---

type memRecordRepo struct{ *memStore }

func (r memRecordRepo) Create(_ context.Context, rec *models.VaccinationRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[rec.StudentID]; !ok {
		return 0, apperrors.ErrStudentNotFound
	}
	for _, other := range r.records {
		if other.StudentID == rec.StudentID && other.VaccineName == rec.VaccineName {
			return 0, apperrors.ErrDuplicateVaccination
		}
	}
	if rec.VaccinationDate.IsZero() {
		rec.VaccinationDate = r.today
	}
	rec.ID = r.id()
	r.records[rec.ID] = *rec
	return rec.ID, nil
}

func (r memRecordRepo) ListByStudent(_ context.Context, studentID int64) ([]models.VaccinationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.VaccinationRecord, 0)
	for _, rec := range r.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- reports ---

type memReportRepo struct{ *memStore }

func (r memReportRepo) StudentCounts(_ context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var vaccinated int64
	for id := range r.students {
		if r.hasRecord(id) {
			vaccinated++
		}
	}
	return int64(len(r.students)), vaccinated, nil
}

func (r memReportRepo) joined(vaccine *string) []models.ReportRow {
	rows := make([]models.ReportRow, 0)
	for _, s := range r.students {
		matched := false
		for _, rec := range r.records {
			if rec.StudentID != s.ID {
				continue
			}
			matched = true
			if vaccine != nil && rec.VaccineName != *vaccine {
				continue
			}
			name, date := rec.VaccineName, rec.VaccinationDate
			rows = append(rows, models.ReportRow{
				StudentID: s.ID, StudentName: s.Name, StudentClass: s.Grade,
				VaccineName: &name, DriveName: rec.DriveName, VaccinationDate: &date, Vaccinated: true,
			})
		}
		if !matched && vaccine == nil {
			rows = append(rows, models.ReportRow{StudentID: s.ID, StudentName: s.Name, StudentClass: s.Grade})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.StudentName != b.StudentName {
			return a.StudentName < b.StudentName
		}
		if a.StudentID != b.StudentID {
			return a.StudentID < b.StudentID
		}
		if a.VaccineName == nil || b.VaccineName == nil {
			return a.VaccineName == nil && b.VaccineName != nil
		}
		return *a.VaccineName < *b.VaccineName
	})
	return rows
}

func (r memReportRepo) ListRows(_ context.Context, f repositories.ReportFilter) ([]models.ReportRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.joined(f.VaccineName)
	if f.Limit == 0 {
		return rows, nil
	}
	start := int(f.Offset)
	if start > len(rows) {
		start = len(rows)
	}
	end := start + int(f.Limit)
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], nil
}

func (r memReportRepo) CountRows(_ context.Context, vaccine *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.joined(vaccine))), nil
}

func (r memReportRepo) CountRecords(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}
