package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/services"
)

// MockAuthService is a mock implementation of services.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

// MockStudentService is a mock implementation of services.StudentService
type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockStudentService) GetStudent(ctx context.Context, id int64) (*dto.StudentDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StudentDetailResponse), args.Error(1)
}

func (m *MockStudentService) SearchStudents(ctx context.Context, term string) ([]dto.StudentSummaryResponse, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.StudentSummaryResponse), args.Error(1)
}

// BulkImport drains the upload so tests can assert on its content.
func (m *MockStudentService) BulkImport(ctx context.Context, input services.BulkImportInput) (*dto.BulkImportResponse, error) {
	var body bytes.Buffer
	if input.File != nil {
		_, _ = io.Copy(&body, input.File)
	}
	args := m.Called(ctx, input.Mode, body.String())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BulkImportResponse), args.Error(1)
}

// MockVaccinationService is a mock implementation of services.VaccinationService
type MockVaccinationService struct {
	mock.Mock
}

func (m *MockVaccinationService) RecordVaccination(ctx context.Context, studentID int64, req *dto.RecordVaccinationRequest) (int64, error) {
	args := m.Called(ctx, studentID, req)
	return args.Get(0).(int64), args.Error(1)
}

// MockDriveService is a mock implementation of services.DriveService
type MockDriveService struct {
	mock.Mock
}

func (m *MockDriveService) CreateDrive(ctx context.Context, req *dto.DriveRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDriveService) UpdateDrive(ctx context.Context, id int64, req *dto.DriveRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockDriveService) GetDrive(ctx context.Context, id int64) (*dto.DriveResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DriveResponse), args.Error(1)
}

func (m *MockDriveService) ListDrives(ctx context.Context) ([]dto.DriveResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DriveResponse), args.Error(1)
}

// MockDashboardService is a mock implementation of services.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Overview(ctx context.Context) (*dto.DashboardOverviewResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardOverviewResponse), args.Error(1)
}

// MockReportService is a mock implementation of services.ReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ListRecords(ctx context.Context, vaccineName string, page, limit int) (*dto.ReportPageResponse, error) {
	args := m.Called(ctx, vaccineName, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReportPageResponse), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context) (*bytes.Buffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bytes.Buffer), args.Error(1)
}

func (m *MockReportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bytes.Buffer), args.Error(1)
}

// MockFileStorage is a mock implementation of filestorage.FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	args := m.Called(fileHeader.Filename, path)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteFile(filePath string) error {
	return m.Called(filePath).Error(0)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
