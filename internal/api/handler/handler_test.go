package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/service"
	"edu-markaz/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	createResult *dto.AssignmentResponse
	createErr    error
	getResult    *dto.AssignmentResponse
	getErr       error
	listResult   []dto.AssignmentResponse
	listTotal    int64
	listErr      error
	updateResult *dto.AssignmentResponse
	updateErr    error
	statusResult *dto.AssignmentResponse
	statusErr    error
	deleteErr    error
}

func (m *mockAssignmentService) Create(_ context.Context, _ *dto.CreateAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAssignmentService) Get(_ context.Context, _ string) (*dto.AssignmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAssignmentService) List(_ context.Context, _ *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockAssignmentService) Update(_ context.Context, _ string, _ *dto.UpdateAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockAssignmentService) ChangeStatus(_ context.Context, _ string, _ *dto.ChangeAssignmentStatusRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockAssignmentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock SessionService ──

type mockSessionService struct {
	generateResult *dto.GenerateSessionsResponse
	generateErr    error
	getResult      *dto.SessionResponse
	getErr         error
	listResult     []dto.SessionResponse
	listErr        error
	updateResult   *dto.SessionResponse
	updateErr      error
}

func (m *mockSessionService) Generate(_ context.Context, _ string, _ *dto.GenerateSessionsRequest, _ string) (*dto.GenerateSessionsResponse, error) {
	return m.generateResult, m.generateErr
}
func (m *mockSessionService) Get(_ context.Context, _ string) (*dto.SessionResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSessionService) List(_ context.Context, _ *dto.SessionListRequest) ([]dto.SessionResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSessionService) Update(_ context.Context, _ string, _ *dto.UpdateSessionRequest, _ string) (*dto.SessionResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock TeacherService ──

type mockTeacherService struct {
	createResult    *dto.TeacherResponse
	createErr       error
	getResult       *dto.TeacherResponse
	getErr          error
	listResult      []dto.TeacherResponse
	listTotal       int64
	listErr         error
	updateResult    *dto.TeacherResponse
	updateErr       error
	deleteErr       error
	recommendResult []dto.RecommendedTeacherResponse
	recommendErr    error
}

func (m *mockTeacherService) Create(_ context.Context, _ *dto.CreateTeacherRequest, _ string) (*dto.TeacherResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTeacherService) Get(_ context.Context, _ string) (*dto.TeacherResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTeacherService) List(_ context.Context, _ *dto.TeacherListRequest) ([]dto.TeacherResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockTeacherService) Update(_ context.Context, _ string, _ *dto.UpdateTeacherRequest, _ string) (*dto.TeacherResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTeacherService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockTeacherService) Recommend(_ context.Context, _ *dto.RecommendTeachersRequest) ([]dto.RecommendedTeacherResponse, error) {
	return m.recommendResult, m.recommendErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportAttendance(_ context.Context, _ *dto.AttendanceExportRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportCalendar(_ context.Context, _ *dto.SessionListRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrongpass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11101 {
		t.Errorf("expected error code 11101, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidRefresh})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshRequest{
		RefreshToken: "stale-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", h.ChangePassword)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_Create_Success(t *testing.T) {
	studentID := "11111111-1111-1111-1111-111111111111"
	mock := &mockAssignmentService{
		createResult: &dto.AssignmentResponse{
			ID:         "asg-1",
			TargetKind: "student",
			Status:     "draft",
		},
	}
	h := NewAssignmentHandler(mock, &mockSessionService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.CreateAssignmentRequest{
		TeacherID: "22222222-2222-2222-2222-222222222222",
		StudentID: &studentID,
		StartDate: "2024-01-01",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAssignmentHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrAssignmentNotFound, 404, 18101},
		{"TeacherNotFound", service.ErrTeacherNotFound, 400, 18102},
		{"TargetExclusive", service.ErrAssignmentTarget, 400, 18105},
		{"InvalidTimeRange", service.ErrInvalidTimeRange, 400, 18106},
		{"InvalidDateRange", service.ErrInvalidDateRange, 400, 18107},
		{"InvalidStatusChange", service.ErrInvalidStatusChange, 400, 18108},
		{"MeetingDayRequired", service.ErrMeetingDayRequired, 400, 18109},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAssignmentService{getErr: tt.err}
			h := NewAssignmentHandler(mock, &mockSessionService{})

			w := setupRecorder()
			req := httptest.NewRequest("GET", "/assignments/asg-1", nil)

			r := gin.New()
			r.GET("/assignments/:id", h.Get)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestAssignmentHandler_GenerateSessions_Blocked(t *testing.T) {
	mock := &mockSessionService{
		generateResult: &dto.GenerateSessionsResponse{
			AssignmentID:  "asg-1",
			BlockedReason: service.ErrOverdueBlocked.Error(),
		},
		generateErr: service.ErrOverdueBlocked,
	}
	h := NewAssignmentHandler(&mockAssignmentService{}, mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/assignments/asg-1/sessions/generate", jsonBody(dto.GenerateSessionsRequest{
		FromDate: "2024-01-01",
		Weeks:    4,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/sessions/generate", func(c *gin.Context) {
		setAuth(c)
		h.GenerateSessions(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18110 {
		t.Errorf("expected code 18110, got %d", resp.Code)
	}
}

func TestAssignmentHandler_GenerateSessions_Success(t *testing.T) {
	mock := &mockSessionService{
		generateResult: &dto.GenerateSessionsResponse{
			AssignmentID: "asg-1",
			CreatedCount: 4,
		},
	}
	h := NewAssignmentHandler(&mockAssignmentService{}, mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/assignments/asg-1/sessions/generate", jsonBody(dto.GenerateSessionsRequest{
		FromDate: "2024-01-01",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/sessions/generate", func(c *gin.Context) {
		setAuth(c)
		h.GenerateSessions(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TeacherHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTeacherHandler_Recommend_Success(t *testing.T) {
	mock := &mockTeacherService{
		recommendResult: []dto.RecommendedTeacherResponse{
			{Teacher: dto.TeacherBrief{ID: "tch-1", Name: "教师甲"}, Score: 39},
		},
	}
	h := NewTeacherHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/teachers/recommend", jsonBody(dto.RecommendTeachersRequest{
		LevelID: "33333333-3333-3333-3333-333333333333",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teachers/recommend", h.Recommend)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTeacherHandler_Recommend_LevelNotFound(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{recommendErr: service.ErrLevelNotFound})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/teachers/recommend", jsonBody(dto.RecommendTeachersRequest{
		LevelID: "33333333-3333-3333-3333-333333333333",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teachers/recommend", h.Recommend)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14102 {
		t.Errorf("expected code 14102, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Attendance_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "考勤报表_2024-01-01_2024-01-31.xlsx",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/attendance?from_date=2024-01-01&to_date=2024-01-31", nil)

	r := gin.New()
	r.GET("/export/attendance", h.ExportAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != contentTypeXLSX {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_Attendance_MissingRange(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/attendance", nil)

	r := gin.New()
	r.GET("/export/attendance", h.ExportAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_Attendance_NoSessions(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoSessions})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/attendance?from_date=2024-01-01&to_date=2024-01-31", nil)

	r := gin.New()
	r.GET("/export/attendance", h.ExportAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExportHandler_Calendar_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\nEND:VCALENDAR"),
		filename: "课表_2024-01-01_2024-01-31.ics",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/calendar?from_date=2024-01-01&to_date=2024-01-31", nil)

	r := gin.New()
	r.GET("/export/calendar", h.ExportCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}
