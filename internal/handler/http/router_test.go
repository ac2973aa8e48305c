package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 31 January 2024
var jan31 = time.Date(2024, 1, 31, 9, 30, 0, 0, time.UTC)

func TestRouter_Heartbeat(t *testing.T) {
	srv := newTestServer(t, jan31)

	w := srv.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RequiresAccessToken(t *testing.T) {
	srv := newTestServer(t, jan31)
	tokens := srv.register(t, "jane", user.RoleEmployee)

	paths := []string{"/api/v1/attendance/today", "/api/v1/dashboard", "/api/v1/reports?start_date=2024-01-01&end_date=2024-01-31"}
	for _, path := range paths {
		w := srv.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = srv.do(t, http.MethodGet, path, nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		// refresh tokens are not access tokens
		w = srv.do(t, http.MethodGet, path, nil, tokens.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAttendanceHandler_MarkFlow(t *testing.T) {
	srv := newTestServer(t, jan31)
	tokens := srv.register(t, "jane", user.RoleEmployee)

	w := srv.do(t, http.MethodGet, "/api/v1/attendance/today", nil, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)
	assert.Equal(t, "No attendance recorded today", env.Message)

	// first mark checks in
	w = srv.do(t, http.MethodPost, "/api/v1/attendance", attendance.MarkAttendanceRequest{Status: "present"}, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var first attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &first))
	assert.Equal(t, "2024-01-31", first.Date)
	assert.Equal(t, "present", first.Status)
	require.NotNil(t, first.CheckInTime)
	assert.Nil(t, first.CheckOutTime)

	// second mark checks out
	notes := "left early"
	w = srv.do(t, http.MethodPost, "/api/v1/attendance", attendance.MarkAttendanceRequest{Status: "half-day", Notes: &notes}, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var second attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "half-day", second.Status)
	assert.NotNil(t, second.CheckOutTime)
	require.NotNil(t, second.Notes)
	assert.Equal(t, notes, *second.Notes)

	w = srv.do(t, http.MethodGet, "/api/v1/attendance/today", nil, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var today attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &today))
	assert.Equal(t, first.ID, today.ID)

	assert.Equal(t, 1, srv.attendance.Len())
}

func TestAttendanceHandler_Mark_InvalidStatus(t *testing.T) {
	srv := newTestServer(t, jan31)
	tokens := srv.register(t, "jane", user.RoleEmployee)

	w := srv.do(t, http.MethodPost, "/api/v1/attendance", attendance.MarkAttendanceRequest{Status: "sick"}, tokens.AccessToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "status")
	assert.Equal(t, 0, srv.attendance.Len())
}

func TestAttendanceHandler_Mark_DefaultsToPresent(t *testing.T) {
	srv := newTestServer(t, jan31)
	tokens := srv.register(t, "jane", user.RoleEmployee)

	w := srv.do(t, http.MethodPost, "/api/v1/attendance", map[string]any{}, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rec))
	assert.Equal(t, "present", rec.Status)
	assert.NotNil(t, rec.CheckInTime)
}

func TestAttendanceHandler_GetMyHistory(t *testing.T) {
	srv := newTestServer(t, jan31)
	tokens := srv.register(t, "jane", user.RoleEmployee)

	w := srv.do(t, http.MethodPost, "/api/v1/attendance", attendance.MarkAttendanceRequest{Status: "present"}, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/attendance/history?page=1&limit=5", nil, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.TotalItems)
	assert.Equal(t, 1, env.Meta.TotalPages)
	assert.Equal(t, 5, env.Meta.Limit)

	var records []attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 1)

	w = srv.do(t, http.MethodGet, "/api/v1/attendance/history?limit=abc", nil, tokens.AccessToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/attendance/history?limit=500", nil, tokens.AccessToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestReportHandler_SelfScope(t *testing.T) {
	srv := newTestServer(t, jan31)
	tokens := srv.register(t, "jane", user.RoleEmployee)

	w := srv.do(t, http.MethodPost, "/api/v1/attendance", attendance.MarkAttendanceRequest{Status: "present"}, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/reports?start_date=2024-01-01&end_date=2024-01-31", nil, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rep report.AttendanceReport
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rep))
	assert.Equal(t, "self", rep.Scope)
	assert.Equal(t, 23, rep.WorkingDays)
	require.NotNil(t, rep.Report)
	assert.Equal(t, 1, rep.Report.PresentDays)
	assert.Equal(t, 4.35, rep.Report.Percentage)
	assert.False(t, rep.Report.MeetsRequirement)

	// POST with a JSON body is equivalent
	w = srv.do(t, http.MethodPost, "/api/v1/reports", report.ReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}, tokens.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportHandler_Validation(t *testing.T) {
	srv := newTestServer(t, jan31)
	tokens := srv.register(t, "jane", user.RoleEmployee)

	w := srv.do(t, http.MethodGet, "/api/v1/reports?start_date=2024-13-01&end_date=2024-01-31", nil, tokens.AccessToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "start_date")
}

func TestReportHandler_AllScope(t *testing.T) {
	srv := newTestServer(t, jan31)
	employee := srv.register(t, "jane", user.RoleEmployee)
	admin := srv.register(t, "boss", user.RoleAdmin)

	w := srv.do(t, http.MethodGet, "/api/v1/reports?start_date=2024-01-01&end_date=2024-01-31&scope=all", nil, employee.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/reports?start_date=2024-01-01&end_date=2024-01-31&scope=all", nil, admin.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rep report.AttendanceReport
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rep))
	assert.Equal(t, "all", rep.Scope)
	require.Len(t, rep.Employees, 1)
	assert.Equal(t, "jane", rep.Employees[0].Username)
	require.NotNil(t, rep.Summary)
	assert.Equal(t, 1, rep.Summary.TotalEmployees)
	assert.Equal(t, 1, rep.Summary.NonCompliant)
}

func TestDashboardHandler(t *testing.T) {
	srv := newTestServer(t, jan31)
	employee := srv.register(t, "jane", user.RoleEmployee)
	admin := srv.register(t, "boss", user.RoleAdmin)

	w := srv.do(t, http.MethodPost, "/api/v1/attendance", attendance.MarkAttendanceRequest{Status: "present"}, employee.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("employee", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/dashboard", nil, employee.AccessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var dash dashboard.EmployeeDashboardResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &dash))
		assert.Equal(t, "2024-01-01", dash.Period.Start)
		assert.Equal(t, "2024-01-31", dash.Period.End)
		assert.Equal(t, 23, dash.WorkingDays)
		assert.Equal(t, 1, dash.PresentDays)
		require.NotNil(t, dash.Today)
		assert.Len(t, dash.Recent, 1)
	})

	t.Run("admin dashboard forbidden for employees", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, employee.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, admin.AccessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var dash dashboard.AdminDashboardResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &dash))
		assert.Equal(t, 23, dash.WorkingDays)
		require.Len(t, dash.Employees, 1)
		assert.Equal(t, 1, dash.Summary.TotalEmployees)
	})
}
