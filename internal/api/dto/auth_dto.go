package dto

import "time"

// ==================== 注册 ====================

// RegisterRequest 注册请求，只允许注册买家/卖家
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,min=8,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=customer seller"`
}

// RegisterResponse 注册响应
// otp_reference 标识本次激活会话，验证时需原样带回
type RegisterResponse struct {
	User         *UserInfo `json:"user"`
	OTPReference string    `json:"otp_reference"`
}

// ==================== 登录 ====================

// LoginRequest 登录请求，邮箱为登录主键
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *UserInfo `json:"user"`
}

// ==================== Token 刷新 ====================

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新 Token 响应
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ==================== OTP ====================

// VerifyOTPRequest 激活验证请求
type VerifyOTPRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Reference string `json:"reference" binding:"required"`
	Code      string `json:"otp" binding:"required,len=6"`
}

// ResendOTPRequest 重发验证码请求
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// OTPSessionResponse 新会话标识响应
type OTPSessionResponse struct {
	OTPReference string `json:"otp_reference"`
}

// ==================== 密码 ====================

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 重置密码请求，携带找回密码流程签发的会话
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Reference   string `json:"reference" binding:"required"`
	Code        string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

// ChangePasswordRequest 修改密码请求 (已登录)
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

// ==================== 用户信息 ====================

// UserInfo 用户信息
type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
