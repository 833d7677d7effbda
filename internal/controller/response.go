package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"emb_shop_v1_202601/internal/service"
)

// 统一出错策略：
// 记录不存在 -> 404；权限/归属 -> 403；唯一性冲突 -> 409；
// 业务规则失败 (含 OTP/邀请过期) -> 400；凭证问题 -> 401；未知错误 -> 500
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrDiscountNotFound),
		errors.Is(err, service.ErrInvitationNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrInviteForbidden),
		errors.Is(err, service.ErrSellerRequired),
		errors.Is(err, service.ErrNotProductOwner),
		errors.Is(err, service.ErrNotDiscountOwner):
		return http.StatusForbidden

	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrInvitationExists):
		return http.StatusConflict

	case errors.Is(err, service.ErrOTPSessionMismatch),
		errors.Is(err, service.ErrOTPCodeMismatch),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrInvitationExpired),
		errors.Is(err, service.ErrRoleNotAllowed),
		errors.Is(err, service.ErrPhoneRequired),
		errors.Is(err, service.ErrInvalidOldPassword),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidDiscountType),
		errors.Is(err, service.ErrInvalidDiscountValue),
		errors.Is(err, service.ErrInvalidDiscountWindow),
		errors.Is(err, service.ErrCategoryInvalidParent),
		errors.Is(err, service.ErrCategoryInUse):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError 业务错误出口，消息不回显用户提交的秘密值
func respondError(ctx *gin.Context, err error) {
	status := errStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "服务器内部错误"
	}
	ctx.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// respondBadRequest 参数绑定失败出口
func respondBadRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": "参数错误: " + err.Error(),
	})
}
