package helpers

import (
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size          int
		wantOffset, wantLim uint64
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 10, 0, 10},
		{2, 0, 10, 10},
		{2, 500, 10, 10},
		{4, 25, 75, 25},
		{1000000000000000000, 10, 9223372036854775790, 10},
		{math.MaxInt64, 100, 9223372036854775700, 100},
	}
	for _, tc := range cases {
		offset, limit := CalculateOffsetLimit(tc.page, tc.size)
		assert.Equal(t, tc.wantOffset, offset, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, tc.wantLim, limit, "page=%d size=%d", tc.page, tc.size)
		assert.LessOrEqual(t, offset, uint64(math.MaxInt64), "page=%d size=%d", tc.page, tc.size)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 3, TotalPages(23, 0))
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query           string
		wantPage, wantN int
	}{
		{"", 1, 10},
		{"?page=3&limit=25", 3, 25},
		{"?page=-1&limit=abc", 1, 10},
		{"?page=2&limit=1000", 2, 10},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/api/reports"+tc.query, nil)
		page, size := ParsePaginationParams(c)
		assert.Equal(t, tc.wantPage, page, tc.query)
		assert.Equal(t, tc.wantN, size, tc.query)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-11-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("05/11/2026")
	assert.Error(t, err)

	none, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-02", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))

	require.NotNil(t, FormatOptionalDate(&d))
	assert.Equal(t, "2026-01-02", *FormatOptionalDate(&d))
	assert.Nil(t, FormatOptionalDate(nil))
	assert.Nil(t, FormatOptionalDate(&time.Time{}))
}
