package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"edu-markaz/backend/internal/model"
	"edu-markaz/backend/internal/repository"
	pkgerrors "edu-markaz/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return paginate(result, offset, limit), int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students  map[string]*model.Student
	idCounter int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.idCounter++
		student.StudentID = fmt.Sprintf("stu-%d", m.idCounter)
	}
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, _ string, offset, limit int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	return paginate(result, offset, limit), int64(len(m.students)), nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.students, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers  map[string]*model.Teacher
	idCounter int
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		m.idCounter++
		teacher.TeacherID = fmt.Sprintf("tch-%d", m.idCounter)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) ListActive(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if t.IsActive {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TeacherID < result[j].TeacherID })
	return result, nil
}

func (m *mockTeacherRepo) List(_ context.Context, offset, limit int) ([]model.Teacher, int64, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TeacherID < result[j].TeacherID })
	return paginate(result, offset, limit), int64(len(m.teachers)), nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) ReplaceSpecializations(_ context.Context, teacher *model.Teacher, levels []model.Level) error {
	if t, ok := m.teachers[teacher.TeacherID]; ok {
		t.Specializations = levels
	}
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.teachers, id)
	return nil
}

// ── Mock LevelRepository ──

type mockLevelRepo struct {
	levels    map[string]*model.Level
	idCounter int
}

func newMockLevelRepo() *mockLevelRepo {
	return &mockLevelRepo{levels: make(map[string]*model.Level)}
}

func (m *mockLevelRepo) Create(_ context.Context, level *model.Level) error {
	if level.LevelID == "" {
		m.idCounter++
		level.LevelID = fmt.Sprintf("lvl-%d", m.idCounter)
	}
	m.levels[level.LevelID] = level
	return nil
}

func (m *mockLevelRepo) GetByID(_ context.Context, id string) (*model.Level, error) {
	if l, ok := m.levels[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLevelRepo) ListBySequence(_ context.Context) ([]model.Level, error) {
	var result []model.Level
	for _, l := range m.levels {
		if l.IsActive {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Sequence < result[j].Sequence })
	return result, nil
}

func (m *mockLevelRepo) Update(_ context.Context, level *model.Level) error {
	m.levels[level.LevelID] = level
	return nil
}

func (m *mockLevelRepo) Delete(_ context.Context, id string) error {
	delete(m.levels, id)
	return nil
}

// ── Mock ClassGroupRepository ──

type mockClassGroupRepo struct {
	groups    map[string]*model.ClassGroup
	idCounter int
}

func newMockClassGroupRepo() *mockClassGroupRepo {
	return &mockClassGroupRepo{groups: make(map[string]*model.ClassGroup)}
}

func (m *mockClassGroupRepo) Create(_ context.Context, group *model.ClassGroup) error {
	if group.ClassGroupID == "" {
		m.idCounter++
		group.ClassGroupID = fmt.Sprintf("grp-%d", m.idCounter)
	}
	m.groups[group.ClassGroupID] = group
	return nil
}

func (m *mockClassGroupRepo) GetByID(_ context.Context, id string) (*model.ClassGroup, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassGroupRepo) List(_ context.Context, includeInactive bool, offset, limit int) ([]model.ClassGroup, int64, error) {
	var result []model.ClassGroup
	for _, g := range m.groups {
		if !includeInactive && !g.IsActive {
			continue
		}
		result = append(result, *g)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockClassGroupRepo) Update(_ context.Context, group *model.ClassGroup) error {
	m.groups[group.ClassGroupID] = group
	return nil
}

func (m *mockClassGroupRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.groups, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
	idCounter   int
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.EnrollmentID == "" {
		m.idCounter++
		enrollment.EnrollmentID = fmt.Sprintf("enr-%d", m.idCounter)
	}
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) GetCurrentByStudent(_ context.Context, studentID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID &&
			(e.Status == model.EnrollmentStatusActive || e.Status == model.EnrollmentStatusPaused) {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListActiveByGroup(_ context.Context, groupID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.ClassGroupID != nil && *e.ClassGroupID == groupID && e.Status == model.EnrollmentStatusActive {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EnrollmentID < result[j].EnrollmentID })
	return result, nil
}

func (m *mockEnrollmentRepo) CountActiveByGroup(ctx context.Context, groupID string) (int64, error) {
	list, _ := m.ListActiveByGroup(ctx, groupID)
	return int64(len(list)), nil
}

func (m *mockEnrollmentRepo) CountActiveDuplicate(_ context.Context, studentID, levelID, excludeID string) (int64, error) {
	var count int64
	for _, e := range m.enrollments {
		if e.EnrollmentID == excludeID {
			continue
		}
		if e.StudentID == studentID && e.LevelID == levelID &&
			(e.Status == model.EnrollmentStatusActive || e.Status == model.EnrollmentStatusPaused) {
			count++
		}
	}
	return count, nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, enrollment *model.Enrollment) error {
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	idCounter   int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.idCounter++
		assignment.AssignmentID = fmt.Sprintf("asg-%d", m.idCounter)
	}
	if assignment.Version == 0 {
		assignment.Version = 1
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) List(_ context.Context, teacherID, status string, offset, limit int) ([]model.Assignment, int64, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if teacherID != "" && a.TeacherID != teacherID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		result = append(result, *a)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockAssignmentRepo) ListActiveByTeacher(_ context.Context, teacherID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID && a.Status == model.AssignmentStatusActive {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListActiveInRange(_ context.Context, from, to time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.Status != model.AssignmentStatusActive {
			continue
		}
		if a.StartDate.After(to) {
			continue
		}
		if a.EndDate != nil && a.EndDate.Before(from) {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	current, ok := m.assignments[assignment.AssignmentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if current != assignment && current.Version != assignment.Version {
		return pkgerrors.ErrOptimisticLock
	}
	assignment.Version++
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions  map[string]*model.Session
	idCounter int

	// attendance 联动考勤 mock，使 CountAttendance 反映真实记录数
	attendance *mockAttendanceRepo
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		m.idCounter++
		session.SessionID = fmt.Sprintf("ses-%d", m.idCounter)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) BatchCreate(_ context.Context, sessions []model.Session) error {
	for i := range sessions {
		m.idCounter++
		sessions[i].SessionID = fmt.Sprintf("ses-%d", m.idCounter)
		cp := sessions[i]
		m.sessions[cp.SessionID] = &cp
	}
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) FindExistingDates(_ context.Context, assignmentID string, from time.Time) (map[string]bool, error) {
	existing := make(map[string]bool)
	for _, s := range m.sessions {
		if s.AssignmentID != nil && *s.AssignmentID == assignmentID && !s.Date.Before(from) {
			existing[s.Date.Format("2006-01-02")] = true
		}
	}
	return existing, nil
}

func (m *mockSessionRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.AssignmentID != nil && *s.AssignmentID == assignmentID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockSessionRepo) ListByTeacherRange(_ context.Context, teacherID string, from, to time.Time) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.TeacherID != nil && *s.TeacherID == teacherID && inRange(s.Date, from, to) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockSessionRepo) ListByGroupRange(_ context.Context, groupID string, from, to time.Time) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.ClassGroupID != nil && *s.ClassGroupID == groupID && inRange(s.Date, from, to) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockSessionRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if inRange(s.Date, from, to) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) CountAttendance(_ context.Context, sessionID string) (int64, error) {
	if m.attendance == nil {
		return 0, nil
	}
	var count int64
	for _, r := range m.attendance.records {
		if r.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records   map[string]*model.AttendanceRecord
	idCounter int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	if record.AttendanceID == "" {
		m.idCounter++
		record.AttendanceID = fmt.Sprintf("att-%d", m.idCounter)
	}
	m.records[record.AttendanceID] = record
	return nil
}

func (m *mockAttendanceRepo) BatchCreate(ctx context.Context, records []model.AttendanceRecord) error {
	for i := range records {
		rec := records[i]
		if err := m.Create(ctx, &rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.AttendanceRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListBySession(_ context.Context, sessionID string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.SessionID == sessionID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AttendanceID < result[j].AttendanceID })
	return result, nil
}

func (m *mockAttendanceRepo) ExistsSubject(_ context.Context, sessionID, subjectKind, subjectID string) (bool, error) {
	for _, r := range m.records {
		if r.SessionID != sessionID || r.SubjectKind != subjectKind {
			continue
		}
		if subjectKind == model.AttendanceSubjectTeacher {
			if r.TeacherID != nil && *r.TeacherID == subjectID {
				return true, nil
			}
		} else if r.StudentID != nil && *r.StudentID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAttendanceRepo) ListByStudentRange(_ context.Context, studentID string, _, _ time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.StudentID != nil && *r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, record *model.AttendanceRecord) error {
	m.records[record.AttendanceID] = record
	return nil
}

// ── Mock FeeRepository ──

type mockFeeRepo struct {
	links     map[string]*model.FeeInvoiceLink
	idCounter int
}

func newMockFeeRepo() *mockFeeRepo {
	return &mockFeeRepo{links: make(map[string]*model.FeeInvoiceLink)}
}

func (m *mockFeeRepo) Create(_ context.Context, link *model.FeeInvoiceLink) error {
	if link.InvoiceLinkID == "" {
		m.idCounter++
		link.InvoiceLinkID = fmt.Sprintf("fee-%d", m.idCounter)
	}
	m.links[link.InvoiceLinkID] = link
	return nil
}

func (m *mockFeeRepo) GetByID(_ context.Context, id string) (*model.FeeInvoiceLink, error) {
	if l, ok := m.links[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeeRepo) ListByEnrollment(_ context.Context, enrollmentID string) ([]model.FeeInvoiceLink, error) {
	var result []model.FeeInvoiceLink
	for _, l := range m.links {
		if l.EnrollmentID == enrollmentID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockFeeRepo) Update(_ context.Context, link *model.FeeInvoiceLink) error {
	m.links[link.InvoiceLinkID] = link
	return nil
}

func (m *mockFeeRepo) Delete(_ context.Context, id string) error {
	delete(m.links, id)
	return nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings *model.EduSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{
		settings: &model.EduSettings{
			Singleton:              true,
			EnableGenderRules:      false,
			BlockSessionsOnOverdue: false,
			MaxOverdueDays:         0,
			DefaultSessionDuration: 1,
			DefaultRecurrenceWeeks: 4,
		},
	}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.EduSettings, error) {
	if m.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.settings, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, settings *model.EduSettings) error {
	m.settings = settings
	return nil
}

// ── 测试聚合 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user       *mockUserRepo
	student    *mockStudentRepo
	teacher    *mockTeacherRepo
	level      *mockLevelRepo
	classGroup *mockClassGroupRepo
	enrollment *mockEnrollmentRepo
	assignment *mockAssignmentRepo
	session    *mockSessionRepo
	attendance *mockAttendanceRepo
	fee        *mockFeeRepo
	settings   *mockSettingsRepo
}

func newTestRepos() *testRepos {
	r := &testRepos{
		user:       newMockUserRepo(),
		student:    newMockStudentRepo(),
		teacher:    newMockTeacherRepo(),
		level:      newMockLevelRepo(),
		classGroup: newMockClassGroupRepo(),
		enrollment: newMockEnrollmentRepo(),
		assignment: newMockAssignmentRepo(),
		session:    newMockSessionRepo(),
		attendance: newMockAttendanceRepo(),
		fee:        newMockFeeRepo(),
		settings:   newMockSettingsRepo(),
	}
	r.session.attendance = r.attendance
	return r
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:       r.user,
		Student:    r.student,
		Teacher:    r.teacher,
		Level:      r.level,
		ClassGroup: r.classGroup,
		Enrollment: r.enrollment,
		Assignment: r.assignment,
		Session:    r.session,
		Attendance: r.attendance,
		Fee:        r.fee,
		Settings:   r.settings,
	}
}

// ── 辅助函数 ──

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
