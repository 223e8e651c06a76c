package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/services"
	"github.com/SheershikaSB/school-vaccination-portal/internal/middleware"
)

// DriveController handles vaccination drive operations
type DriveController struct {
	driveService services.DriveService
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService services.DriveService) *DriveController {
	return &DriveController{driveService: driveService}
}

// ListDrives returns every drive ordered by date
// @Summary List vaccination drives
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DriveResponse} "Drives retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives [get]
func (c *DriveController) ListDrives(ctx *gin.Context) {
	drives, err := c.driveService.ListDrives(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(drives))
}

// GetDrive returns one drive
// @Summary Get drive by ID
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.DriveResponse} "Drive retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid drive ID"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives/{id} [get]
func (c *DriveController) GetDrive(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid drive ID", err.Error())
		return
	}

	drive, err := c.driveService.GetDrive(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(drive))
}

// CreateDrive schedules a drive
// @Summary Schedule a vaccination drive
// @Description The drive date must be at least 15 days ahead. A drive for the same vaccine, date and grades cannot be scheduled twice.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DriveRequest true "Drive information"
// @Success 201 {object} dto.APIResponse{data=dto.DriveCreatedResponse} "Drive created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data, date too soon or duplicate drive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	var req dto.DriveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.driveService.CreateDrive(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.DriveCreatedResponse{DriveID: id}))
}

// UpdateDrive edits an upcoming drive
// @Summary Update a vaccination drive
// @Description Drives whose date has passed cannot be edited.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param request body dto.DriveRequest true "Drive information"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Drive updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data, past drive or duplicate drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives/{id} [put]
func (c *DriveController) UpdateDrive(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid drive ID", err.Error())
		return
	}

	var req dto.DriveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.driveService.UpdateDrive(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Drive updated successfully"}))
}
