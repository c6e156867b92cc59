package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/pitchfund/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23502": NotNullViolation,
		"23514": CheckViolation,
		"42P01": Other,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapCode(in), in)
	}
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("bogus"))
}

func TestConvertPgError_Unwrap(t *testing.T) {
	raw := &pgconn.PgError{Code: "23514", Severity: "ERROR", Message: "check failed", TableName: "businesses"}
	converted := ConvertPgError(raw)

	assert.Equal(t, CheckViolation, converted.Code)
	assert.Equal(t, "businesses", converted.TableName)

	var back *pgconn.PgError
	require.True(t, errors.As(converted, &back))
	assert.Same(t, raw, back)
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, CheckViolation, ErrCode(raw))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestSingularize(t *testing.T) {
	assert.Equal(t, "business", singularize("businesses"))
	assert.Equal(t, "business_image", singularize("business_images"))
	assert.Equal(t, "RECORD", singularize("RECORD"))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "foreign key",
			err:        &pgconn.PgError{Code: "23503", TableName: "business_images", ColumnName: "business_id"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BUSINESS_IMAGE_NOT_FOUND",
			wantMsg:    "The referenced Business does not exist",
		},
		{
			name:       "unique",
			err:        &pgconn.PgError{Code: "23505", TableName: "businesses", ConstraintName: "businesses_name_key"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BUSINESS_ALREADY_EXISTS",
			wantMsg:    "A Business with this Name already exists",
		},
		{
			name:       "not null",
			err:        &pgconn.PgError{Code: "23502", TableName: "business_videos", ColumnName: "video_file"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BUSINESS_VIDEO_REQUIRED",
			wantMsg:    "The Video File is required",
		},
		{
			name:       "check",
			err:        &pgconn.PgError{Code: "23514", TableName: "businesses"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BUSINESS_INVALID",
			wantMsg:    "One or more values do not meet required conditions",
		},
		{
			name:       "other pg",
			err:        &pgconn.PgError{Code: "40001"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "no rows",
			err:        fmt.Errorf("get: %w", pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Resource not found",
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.True(t, errors.As(HandleError(tt.err), &httpErr))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, httpErr.Message)
			}
		})
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewBadRequestError("Business not found.", true, nil, nil, nil)
	assert.Same(t, original, HandleError(original))
}
