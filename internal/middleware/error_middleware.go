package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/logger"
)

// ErrorDetailFor maps err onto an HTTP status and a client-safe ErrorDetail.
// Unknown errors become a generic 500.
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.Message(err))
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeConflict, apperrors.Message(err))
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.Message(err))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	logAPIError(c, status, err)
	c.JSON(status, dto.NewErrorResponse(detail))
}

// HandleAPIErrorWithData is HandleAPIError for failures that still carry a
// payload, such as the per-row report of an aborted bulk import.
func HandleAPIErrorWithData(c *gin.Context, err error, data interface{}) {
	status, detail := ErrorDetailFor(err)
	logAPIError(c, status, err)
	resp := dto.NewSuccessResponse(data)
	resp.Success = false
	resp.Error = detail
	c.JSON(status, resp)
}

func logAPIError(c *gin.Context, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	logger.Error().
		Err(err).
		Str("requestID", c.GetString(ContextRequestID)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled API error")
}
