package dto

import "time"

// ==================== 管理员邀请 ====================

// AdminInviteRequest 签发邀请请求
type AdminInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// InvitationInfo 邀请信息 (审计列表用，不含 token)
type InvitationInfo struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	InvitedBy int64     `json:"invited_by"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InvitationListResponse 邀请列表响应
type InvitationListResponse struct {
	Total int64            `json:"total"`
	Items []InvitationInfo `json:"items"`
}

// AcceptInviteRequest 接受邀请请求
type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// AcceptInviteResponse 接受邀请响应，附带可直接使用的会话凭证
type AcceptInviteResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}
