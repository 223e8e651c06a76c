package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/services"
	"github.com/SheershikaSB/school-vaccination-portal/internal/middleware"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/filestorage"
)

// importArchiveDir is the storage subdirectory uploaded CSV files are kept in.
const importArchiveDir = "imports"

// StudentController handles student and vaccination operations
type StudentController struct {
	studentService     services.StudentService
	vaccinationService services.VaccinationService
	fileStorage        filestorage.FileStorage
	logger             zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	vaccinationService services.VaccinationService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		studentService:     studentService,
		vaccinationService: vaccinationService,
		fileStorage:        fileStorage,
		logger:             logger,
	}
}

// SearchStudents lists students, optionally filtered
// @Summary Search students
// @Description Matches the term against name and grade (case-insensitive) and the student id. An empty term returns every student.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentSummaryResponse} "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	students, err := c.studentService.SearchStudents(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetStudent returns one student with vaccination history
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentDetailResponse} "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid student ID", err.Error())
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// CreateStudent adds a student
// @Summary Create a student
// @Description Creates a student. When vaccinated is true a vaccination record for vaccine_name is created as well.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentCreatedResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.StudentCreatedResponse{StudentID: id}))
}

// UpdateStudent edits a student
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid student ID", err.Error())
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Student updated successfully"}))
}

// RecordVaccination marks a student as vaccinated
// @Summary Record a vaccination
// @Description A student can receive each vaccine only once.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.RecordVaccinationRequest true "Vaccination details"
// @Success 201 {object} dto.APIResponse{data=dto.VaccinationRecordedResponse} "Vaccination recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or duplicate vaccination"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/vaccination [post]
func (c *StudentController) RecordVaccination(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid student ID", err.Error())
		return
	}

	var req dto.RecordVaccinationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	recordID, err := c.vaccinationService.RecordVaccination(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.VaccinationRecordedResponse{
		RecordID: recordID,
		Message:  "Vaccination status updated",
	}))
}

// BulkUpload imports students from a CSV file
// @Summary Bulk import students
// @Description CSV header: name,grade[,dob,vaccinated,vaccine_name,drive_name]. In best_effort mode every row is imported on its own; in atomic mode one failing row rolls back the whole file.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param mode query string false "best_effort (default) or atomic" Enums(best_effort, atomic)
// @Success 200 {object} dto.APIResponse{data=dto.BulkImportResponse} "Import finished"
// @Failure 400 {object} dto.APIResponse{data=dto.BulkImportResponse} "Malformed CSV or atomic import aborted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/bulk-upload [post]
func (c *StudentController) BulkUpload(ctx *gin.Context) {
	mode, err := services.ParseImportMode(ctx.Query("mode"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		badRequest(ctx, "Invalid or missing file", "multipart field 'file' is required")
		return
	}

	stored, err := c.fileStorage.SaveFileWithPath(fileHeader, importArchiveDir)
	if err != nil {
		c.logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to archive uploaded CSV")
		stored = ""
	} else {
		c.logger.Info().Str("archived", stored).Str("filename", fileHeader.Filename).Msg("Uploaded CSV archived")
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.studentService.BulkImport(ctx.Request.Context(), services.BulkImportInput{File: file, Mode: mode})
	if err != nil {
		// Nothing from a rejected or rolled back file was applied, so its archive copy goes too.
		c.discardArchive(stored)
		if result != nil {
			middleware.HandleAPIErrorWithData(ctx, err, result)
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

func (c *StudentController) discardArchive(stored string) {
	if stored == "" {
		return
	}
	if err := c.fileStorage.DeleteFile(stored); err != nil {
		c.logger.Warn().Err(err).Str("archived", stored).Msg("Failed to remove archived CSV")
	}
}
