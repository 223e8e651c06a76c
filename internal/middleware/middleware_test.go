package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Field   string          `json:"field"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newJWT(ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: ttl, TokenIssuer: "vaccination-portal"})
}

func authRouter(jwtService *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/private", m.JWTAuth(), m.RoleRequired("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, "%d:%s", c.GetInt64(ContextUserID), c.GetString(ContextUsername))
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWT(time.Hour)
	token, _, err := jwtService.GenerateAccessToken(7, "admin", "admin")
	require.NoError(t, err)
	staff, _, err := jwtService.GenerateAccessToken(8, "nurse", "staff")
	require.NoError(t, err)
	expired, _, err := newJWT(-time.Minute).GenerateAccessToken(7, "admin", "admin")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, string(dto.ErrorCodeUnauthorized)},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, string(dto.ErrorCodeUnauthorized)},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, string(dto.ErrorCodeInvalidToken)},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, string(dto.ErrorCodeExpiredToken)},
		{"wrong role", "Bearer " + staff, http.StatusForbidden, string(dto.ErrorCodeUnauthorized)},
		{"bearer", "Bearer " + token, http.StatusOK, ""},
		{"bare token", token, http.StatusOK, ""},
	}

	r := authRouter(jwtService)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "7:admin", w.Body.String())
				return
			}
			body := decodeError(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "student not found"},
		{apperrors.ErrDuplicateDrive, http.StatusBadRequest, dto.ErrorCodeConflict, apperrors.ErrDuplicateDrive.Error()},
		{apperrors.NewCustomError(apperrors.ErrInvalidSchedule, "Drive date must be at least 15 days in the future."),
			http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Drive date must be at least 15 days in the future."},
		{fmt.Errorf("login: %w", apperrors.ErrInvalidCredentials), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid username or password"},
		{auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
		{fmt.Errorf("%w: signature is invalid", auth.ErrInvalidToken), http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
		{auth.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
		{errors.New("pq: connection reset by 10.0.0.3"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, tc.err)

		assert.Equal(t, tc.status, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, string(tc.code), body.Error.Code)
		assert.Equal(t, tc.message, body.Error.Message)
		assert.NotContains(t, w.Body.String(), "10.0.0.3")
	}
}

func TestHandleAPIErrorWithData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	HandleAPIErrorWithData(c, apperrors.NewValidationError("Bulk import aborted at row 3: bad"), map[string]int{"imported": 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, 0, body.Data["imported"])
	assert.Contains(t, w.Body.String(), "Bulk import aborted at row 3")
}

type bindTarget struct {
	DriveName string `json:"drive_name" binding:"required,notblank"`
	DriveDate string `json:"drive_date" binding:"required,datetime=2006-01-02"`
}

func TestBindJSON(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators())

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req bindTarget
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	send := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return w
	}

	w := send(`{"drive_name":"Flu Shot","drive_date":"2025-07-01"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = send(`{"drive_name":"   ","drive_date":"2025-07-01"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "drive_name", body.Error.Field)
	assert.Equal(t, "drive_name is required", body.Error.Message)

	w = send(`{"drive_name":"Flu Shot","drive_date":"01/07/2025"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "drive_date must be a date in YYYY-MM-DD format", decodeError(t, w).Error.Message)

	w = send(`{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", decodeError(t, w).Error.Message)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(dto.ErrorCodeInternalServer), decodeError(t, w).Error.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

type countingLimiter struct {
	limit int
	hits  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.hits[key]++
	return l.hits[key] <= l.limit, nil
}

func TestRateLimit(t *testing.T) {
	limiter := &countingLimiter{limit: 2, hits: map[string]int{}}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, "login"), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Len(t, limiter.hits, 1)
	for key := range limiter.hits {
		assert.True(t, strings.HasPrefix(key, "login:"))
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, "login"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
