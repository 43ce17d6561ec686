package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/model"
)

func setupTestSessionService() (SessionService, *testRepos) {
	repos := newTestRepos()
	return NewSessionService(repos.toRepository(), zap.NewNop()), repos
}

// seedStudentAssignment 一对一安排：周三上课，09:00 起
func seedStudentAssignment(repos *testRepos) {
	ctx := context.Background()
	repos.teacher.Create(ctx, &model.Teacher{TeacherID: "tch-1", Name: "教师甲", IsActive: true})
	repos.student.Create(ctx, &model.Student{StudentID: "stu-1", Name: "学员甲"})
	repos.assignment.Create(ctx, &model.Assignment{
		AssignmentID: "asg-1",
		TeacherID:    "tch-1",
		StudentID:    strPtr("stu-1"),
		StartDate:    date("2024-01-01"),
		Status:       model.AssignmentStatusActive,
		MeetingDay:   intPtr(2),
		TimeStart:    "09:00",
	})
}

// seedGroupAssignment 班组安排：周一/周三各一次，两名 active 学员
func seedGroupAssignment(repos *testRepos) {
	ctx := context.Background()
	repos.teacher.Create(ctx, &model.Teacher{TeacherID: "tch-1", Name: "教师甲", IsActive: true})
	repos.student.Create(ctx, &model.Student{StudentID: "stu-1", Name: "学员甲"})
	repos.student.Create(ctx, &model.Student{StudentID: "stu-2", Name: "学员乙"})
	repos.student.Create(ctx, &model.Student{StudentID: "stu-3", Name: "学员丙"})
	repos.level.Create(ctx, &model.Level{LevelID: "lvl-1", Name: "初级", Sequence: 10, IsActive: true})
	repos.classGroup.Create(ctx, &model.ClassGroup{
		ClassGroupID: "grp-1",
		Name:         "初级一班",
		LevelID:      "lvl-1",
		Capacity:     10,
		MeetingDays:  model.IntArray{0, 2},
		TimeStart:    "16:00",
		TimeEnd:      "17:30",
		Location:     "教室 A",
		IsActive:     true,
	})
	repos.enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-1", StudentID: "stu-1", LevelID: "lvl-1",
		ClassGroupID: strPtr("grp-1"), StartDate: date("2024-01-01"),
		Status: model.EnrollmentStatusActive,
	})
	repos.enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-2", StudentID: "stu-2", LevelID: "lvl-1",
		ClassGroupID: strPtr("grp-1"), StartDate: date("2024-01-01"),
		Status: model.EnrollmentStatusActive,
	})
	// paused 注册不参与考勤播种
	repos.enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-3", StudentID: "stu-3", LevelID: "lvl-1",
		ClassGroupID: strPtr("grp-1"), StartDate: date("2024-01-01"),
		Status: model.EnrollmentStatusPaused,
	})
	repos.assignment.Create(ctx, &model.Assignment{
		AssignmentID: "asg-2",
		TeacherID:    "tch-1",
		ClassGroupID: strPtr("grp-1"),
		StartDate:    date("2024-01-01"),
		Status:       model.AssignmentStatusActive,
	})
}

func TestGenerateSessionsStudentPath(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedStudentAssignment(repos)
	ctx := context.Background()

	resp, err := svc.Generate(ctx, "asg-1", &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 3}, "user-1")
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	if resp.CreatedCount != 3 {
		t.Fatalf("期望生成 3 个课次，实际=%d", resp.CreatedCount)
	}
	want := []string{"2024-01-03", "2024-01-10", "2024-01-17"}
	for i, d := range resp.CreatedDates {
		if d != want[i] {
			t.Errorf("第 %d 个日期期望 %s，实际=%s", i, want[i], d)
		}
	}

	// 课次结束时间按默认时长 1 小时补全
	for _, sess := range repos.session.sessions {
		if sess.TimeStart != "09:00" || sess.TimeEnd != "10:00" {
			t.Errorf("课次时间窗期望 09:00-10:00，实际=%s-%s", sess.TimeStart, sess.TimeEnd)
		}
	}

	// 考勤底稿：每课次教师 1 条（present）+ 学员 1 条（absent）
	if len(repos.attendance.records) != 6 {
		t.Fatalf("期望播种 6 条考勤底稿，实际=%d", len(repos.attendance.records))
	}
	teacherSeeds, studentSeeds := 0, 0
	for _, rec := range repos.attendance.records {
		switch rec.SubjectKind {
		case model.AttendanceSubjectTeacher:
			teacherSeeds++
			if rec.Status != model.AttendanceStatusPresent {
				t.Errorf("教师底稿状态期望 present，实际=%s", rec.Status)
			}
		case model.AttendanceSubjectStudent:
			studentSeeds++
			if rec.Status != model.AttendanceStatusAbsent {
				t.Errorf("学员底稿状态期望 absent，实际=%s", rec.Status)
			}
		}
	}
	if teacherSeeds != 3 || studentSeeds != 3 {
		t.Errorf("底稿分布期望教师 3/学员 3，实际=%d/%d", teacherSeeds, studentSeeds)
	}
}

func TestGenerateSessionsIdempotent(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedStudentAssignment(repos)
	ctx := context.Background()
	req := &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 3}

	if _, err := svc.Generate(ctx, "asg-1", req, "user-1"); err != nil {
		t.Fatalf("首次 Generate 应成功: %v", err)
	}
	resp, err := svc.Generate(ctx, "asg-1", req, "user-1")
	if err != nil {
		t.Fatalf("重复 Generate 应成功: %v", err)
	}

	if resp.CreatedCount != 0 {
		t.Errorf("重复生成不应新建课次，实际=%d", resp.CreatedCount)
	}
	if resp.SkippedCount != 3 {
		t.Errorf("期望跳过 3 个已有日期，实际=%d", resp.SkippedCount)
	}
	if len(repos.session.sessions) != 3 {
		t.Errorf("课次总数应保持 3，实际=%d", len(repos.session.sessions))
	}
}

func TestGenerateSessionsDefaultWeeks(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedStudentAssignment(repos)

	// weeks=0 走系统默认周数（测试设置为 4）
	resp, err := svc.Generate(context.Background(), "asg-1", &dto.GenerateSessionsRequest{FromDate: "2024-01-01"}, "user-1")
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if resp.CreatedCount != 4 {
		t.Errorf("默认周数期望生成 4 个课次，实际=%d", resp.CreatedCount)
	}
}

func TestGenerateSessionsOverdueBlocked(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedStudentAssignment(repos)
	ctx := context.Background()

	repos.settings.settings.BlockSessionsOnOverdue = true
	repos.settings.settings.MaxOverdueDays = 7

	due := time.Now().AddDate(0, 0, -30)
	repos.enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-1", StudentID: "stu-1", LevelID: "lvl-1",
		StartDate: date("2024-01-01"), Status: model.EnrollmentStatusActive,
		FeeLinks: []model.FeeInvoiceLink{
			{InvoiceLinkID: "fee-1", EnrollmentID: "enr-1", State: model.FeeStateOpen, DueDate: &due},
		},
	})

	resp, err := svc.Generate(ctx, "asg-1", &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 3}, "user-1")
	if !errors.Is(err, ErrOverdueBlocked) {
		t.Fatalf("期望 ErrOverdueBlocked，实际=%v", err)
	}
	if resp == nil || resp.BlockedReason == "" {
		t.Error("拦截响应应携带 BlockedReason")
	}
	if len(repos.session.sessions) != 0 {
		t.Errorf("被拦截时不应生成课次，实际=%d", len(repos.session.sessions))
	}
}

func TestGenerateSessionsOverdueWithinLimit(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedStudentAssignment(repos)
	ctx := context.Background()

	repos.settings.settings.BlockSessionsOnOverdue = true
	repos.settings.settings.MaxOverdueDays = 60

	due := time.Now().AddDate(0, 0, -30)
	repos.enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-1", StudentID: "stu-1", LevelID: "lvl-1",
		StartDate: date("2024-01-01"), Status: model.EnrollmentStatusActive,
		FeeLinks: []model.FeeInvoiceLink{
			{InvoiceLinkID: "fee-1", EnrollmentID: "enr-1", State: model.FeeStateOpen, DueDate: &due},
		},
	})

	resp, err := svc.Generate(ctx, "asg-1", &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 2}, "user-1")
	if err != nil {
		t.Fatalf("未超限欠费不应拦截: %v", err)
	}
	if resp.CreatedCount != 2 {
		t.Errorf("期望生成 2 个课次，实际=%d", resp.CreatedCount)
	}
}

func TestGenerateSessionsGroupPath(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedGroupAssignment(repos)
	ctx := context.Background()

	// 班组路径不走欠费闸门
	repos.settings.settings.BlockSessionsOnOverdue = true
	repos.settings.settings.MaxOverdueDays = 1

	resp, err := svc.Generate(ctx, "asg-2", &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 2}, "user-1")
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	// 周一、周三各 2 次
	if resp.CreatedCount != 4 {
		t.Fatalf("期望生成 4 个课次，实际=%d", resp.CreatedCount)
	}

	for _, sess := range repos.session.sessions {
		if sess.TimeStart != "16:00" || sess.TimeEnd != "17:30" {
			t.Errorf("课次应复用班组时间窗 16:00-17:30，实际=%s-%s", sess.TimeStart, sess.TimeEnd)
		}
		if sess.Location != "教室 A" {
			t.Errorf("课次应复用班组地点，实际=%q", sess.Location)
		}
	}

	// 每课次：教师 1 条 + active 学员 2 条（paused 不计）
	if len(repos.attendance.records) != 12 {
		t.Errorf("期望播种 12 条考勤底稿，实际=%d", len(repos.attendance.records))
	}
	for _, rec := range repos.attendance.records {
		if rec.StudentID != nil && *rec.StudentID == "stu-3" {
			t.Error("paused 注册的学员不应播种考勤")
		}
	}
}

func TestGenerateSessionsGroupIdempotent(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedGroupAssignment(repos)
	ctx := context.Background()

	req := &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 2}
	first, err := svc.Generate(ctx, "asg-2", req, "user-1")
	if err != nil {
		t.Fatalf("首次 Generate 应成功: %v", err)
	}
	if first.CreatedCount != 4 {
		t.Fatalf("期望生成 4 个课次，实际=%d", first.CreatedCount)
	}

	// 重复生成：同日课次全部跳过，不重复播种考勤
	second, err := svc.Generate(ctx, "asg-2", req, "user-1")
	if err != nil {
		t.Fatalf("重复 Generate 应成功: %v", err)
	}
	if second.CreatedCount != 0 {
		t.Errorf("重复生成不应新建课次，实际=%d", second.CreatedCount)
	}
	if second.SkippedCount != 4 {
		t.Errorf("期望跳过 4 个已有课次，实际=%d", second.SkippedCount)
	}
	if len(repos.session.sessions) != 4 {
		t.Errorf("课次总数应保持 4，实际=%d", len(repos.session.sessions))
	}
	if len(repos.attendance.records) != 12 {
		t.Errorf("考勤底稿应保持 12 条，实际=%d", len(repos.attendance.records))
	}
}

func TestGenerateSessionsMeetingDayRequired(t *testing.T) {
	svc, repos := setupTestSessionService()
	ctx := context.Background()
	repos.teacher.Create(ctx, &model.Teacher{TeacherID: "tch-1", Name: "教师甲", IsActive: true})
	repos.student.Create(ctx, &model.Student{StudentID: "stu-1", Name: "学员甲"})
	repos.assignment.Create(ctx, &model.Assignment{
		AssignmentID: "asg-1",
		TeacherID:    "tch-1",
		StudentID:    strPtr("stu-1"),
		StartDate:    date("2024-01-01"),
		Status:       model.AssignmentStatusActive,
	})

	_, err := svc.Generate(ctx, "asg-1", &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 2}, "user-1")
	if !errors.Is(err, ErrMeetingDayRequired) {
		t.Errorf("期望 ErrMeetingDayRequired，实际=%v", err)
	}
}

func TestGenerateSessionsAssignmentNotFound(t *testing.T) {
	svc, _ := setupTestSessionService()

	_, err := svc.Generate(context.Background(), "asg-missing", &dto.GenerateSessionsRequest{FromDate: "2024-01-01"}, "user-1")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际=%v", err)
	}
}

func TestUpdateSessionRescheduleLocked(t *testing.T) {
	svc, repos := setupTestSessionService()
	ctx := context.Background()

	repos.session.Create(ctx, &model.Session{
		SessionID: "ses-1", Date: date("2024-01-03"),
		TimeStart: "09:00", TimeEnd: "10:00",
		Status: model.SessionStatusScheduled,
	})
	repos.attendance.Create(ctx, &model.AttendanceRecord{
		SessionID: "ses-1", SubjectKind: model.AttendanceSubjectStudent,
		StudentID: strPtr("stu-1"), Status: model.AttendanceStatusPresent,
	})

	_, err := svc.Update(ctx, "ses-1", &dto.UpdateSessionRequest{Date: strPtr("2024-01-04")}, "user-1")
	if !errors.Is(err, ErrSessionLocked) {
		t.Errorf("已有考勤的课次改期应拦截，实际=%v", err)
	}

	// 不改日期的字段更新仍放行
	resp, err := svc.Update(ctx, "ses-1", &dto.UpdateSessionRequest{Status: strPtr(model.SessionStatusDone)}, "user-1")
	if err != nil {
		t.Fatalf("状态更新应成功: %v", err)
	}
	if resp.Status != model.SessionStatusDone {
		t.Errorf("课次状态期望 done，实际=%s", resp.Status)
	}
}

func TestUpdateSessionReschedule(t *testing.T) {
	svc, repos := setupTestSessionService()
	ctx := context.Background()

	repos.session.Create(ctx, &model.Session{
		SessionID: "ses-1", Date: date("2024-01-03"),
		Status: model.SessionStatusScheduled,
	})

	resp, err := svc.Update(ctx, "ses-1", &dto.UpdateSessionRequest{Date: strPtr("2024-01-05")}, "user-1")
	if err != nil {
		t.Fatalf("无考勤课次改期应成功: %v", err)
	}
	if resp.Date != "2024-01-05" {
		t.Errorf("课次日期期望 2024-01-05，实际=%s", resp.Date)
	}
}

func TestUpdateSessionInvalidTimeRange(t *testing.T) {
	svc, repos := setupTestSessionService()
	ctx := context.Background()

	repos.session.Create(ctx, &model.Session{
		SessionID: "ses-1", Date: date("2024-01-03"),
		TimeStart: "09:00", TimeEnd: "10:00",
		Status: model.SessionStatusScheduled,
	})

	_, err := svc.Update(ctx, "ses-1", &dto.UpdateSessionRequest{TimeEnd: strPtr("08:00")}, "user-1")
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际=%v", err)
	}
}

func TestListSessionsInvalidRange(t *testing.T) {
	svc, _ := setupTestSessionService()

	_, err := svc.List(context.Background(), &dto.SessionListRequest{FromDate: "2024-02-01", ToDate: "2024-01-01"})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际=%v", err)
	}
}

func TestListSessionsByTeacher(t *testing.T) {
	svc, repos := setupTestSessionService()
	seedStudentAssignment(repos)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "asg-1", &dto.GenerateSessionsRequest{FromDate: "2024-01-01", Weeks: 3}, "user-1"); err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}

	sessions, err := svc.List(ctx, &dto.SessionListRequest{TeacherID: "tch-1", FromDate: "2024-01-01", ToDate: "2024-01-31"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("期望查到 3 个课次，实际=%d", len(sessions))
	}
	// 按日期升序
	for i := 0; i < len(sessions)-1; i++ {
		if sessions[i].Date > sessions[i+1].Date {
			t.Errorf("课次列表应按日期升序: %s 在 %s 之前", sessions[i].Date, sessions[i+1].Date)
		}
	}
}
