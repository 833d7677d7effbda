package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/middleware"
	"emb_shop_v1_202601/internal/service"
)

// ==================== InviteController 邀请控制器 ====================

// InviteController 管理员邀请控制器
type InviteController struct {
	inviteService *service.InviteService
}

// NewInviteController 创建邀请控制器
func NewInviteController(inviteService *service.InviteService) *InviteController {
	return &InviteController{inviteService: inviteService}
}

// Issue 签发管理员邀请
// @Summary 签发管理员邀请
// @Tags Invite
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminInviteRequest true "受邀邮箱"
// @Success 201 {object} dto.InvitationInfo
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/invite/admin [post]
func (c *InviteController) Issue(ctx *gin.Context) {
	var req dto.AdminInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	inviterID := middleware.GetUserID(ctx)

	invitation, err := c.inviteService.Issue(ctx.Request.Context(), inviterID, req.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "邀请已发送",
		"data": dto.InvitationInfo{
			ID:        invitation.ID,
			Email:     invitation.Email,
			InvitedBy: invitation.InvitedByID,
			IsUsed:    invitation.IsUsed,
			CreatedAt: invitation.CreatedAt,
			ExpiresAt: invitation.ExpiresAt,
		},
	})
}

// List 邀请审计列表
// @Summary 邀请列表
// @Tags Invite
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.InvitationListResponse
// @Router /auth/invite/admin [get]
func (c *InviteController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	resp, err := c.inviteService.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": resp,
	})
}

// Accept 接受邀请
// @Summary 接受管理员邀请
// @Tags Invite
// @Accept json
// @Produce json
// @Param request body dto.AcceptInviteRequest true "token 与密码"
// @Success 201 {object} dto.AcceptInviteResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /auth/invite/admin/accept [post]
func (c *InviteController) Accept(ctx *gin.Context) {
	var req dto.AcceptInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.inviteService.Accept(ctx.Request.Context(), req.Token, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "邀请已接受，管理员账号创建成功",
		"data":    resp,
	})
}
