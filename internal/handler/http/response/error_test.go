package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	var invalid validator.ValidationErrors
	invalid.Add("phoneNumber", "phone number must be 10 digits")

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", invalid.Err(), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"candidate not found", candidate.ErrCandidateNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped employee not found", fmt.Errorf("load: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"attendance employee missing", attendance.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"candidate email taken", candidate.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{"employee email taken", employee.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{"serial conflict", candidate.ErrSerialConflict, http.StatusConflict, "CONFLICT"},
		{"not present", leave.ErrNotPresentOnDate, http.StatusBadRequest, "BUSINESS_RULE_VIOLATION"},
		{"already processed", leave.ErrLeaveAlreadyProcessed, http.StatusBadRequest, "BUSINESS_RULE_VIOLATION"},
		{"file type", fmt.Errorf("%w: only .pdf allowed", file.ErrInvalidFileType), http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, c.err)

			assert.Equal(t, c.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, c.code, resp.Error.Code)
		})
	}
}

func TestNotPresentMessageIsSurfaced(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, leave.ErrNotPresentOnDate)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Employee must be present on the selected leave date to apply for leave.", resp.Error.Message)
}
