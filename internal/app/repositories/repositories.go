package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
)

// psql builds every statement with PostgreSQL placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Transactor runs fn inside a transaction carried by the context.
// Repository calls made with that context join the transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateIfAbsent inserts the user unless the username is taken and reports whether it did.
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
}

// IStudentRepository defines the interface for student persistence
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	MarkVaccinated(ctx context.Context, id int64, vaccineName string, driveName *string) error
	Search(ctx context.Context, term string) ([]models.StudentSummary, error)
}

// IDriveRepository defines the interface for vaccination drive persistence
type IDriveRepository interface {
	Create(ctx context.Context, drive *models.VaccinationDrive) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.VaccinationDrive, error)
	Update(ctx context.Context, drive *models.VaccinationDrive) error
	List(ctx context.Context) ([]models.VaccinationDrive, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.VaccinationDrive, error)
}

// IVaccinationRecordRepository defines the interface for vaccination record persistence
type IVaccinationRecordRepository interface {
	Create(ctx context.Context, record *models.VaccinationRecord) (int64, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.VaccinationRecord, error)
}

// ReportFilter selects report rows. A zero Limit returns every row.
type ReportFilter struct {
	VaccineName *string
	Limit       uint64
	Offset      uint64
}

// IReportRepository defines the aggregate queries behind the dashboard and reports
type IReportRepository interface {
	StudentCounts(ctx context.Context) (total int64, vaccinated int64, err error)
	ListRows(ctx context.Context, filter ReportFilter) ([]models.ReportRow, error)
	CountRows(ctx context.Context, vaccineName *string) (int64, error)
	CountRecords(ctx context.Context) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	StudentRepository           *StudentRepository
	DriveRepository             *DriveRepository
	VaccinationRecordRepository *VaccinationRecordRepository
	ReportRepository            *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(database),
		StudentRepository:           NewStudentRepository(database),
		DriveRepository:             NewDriveRepository(database),
		VaccinationRecordRepository: NewVaccinationRecordRepository(database),
		ReportRepository:            NewReportRepository(database),
	}
}
