// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
)

var errInvalidID = errors.New("id must be a positive integer")

// parseIDParam parses a positive ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// badRequest writes a 400 validation error with an optional detail string.
func badRequest(ctx *gin.Context, message, details string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if details != "" {
		detail = detail.WithDetails(details)
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
