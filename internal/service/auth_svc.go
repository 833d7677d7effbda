package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/middleware"
	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 注册/登录/OTP 激活/密码找回
type AuthService struct {
	userRepo repository.UserRepository
	otpSvc   *OTPService
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository, otpSvc *OTPService) *AuthService {
	return &AuthService{userRepo: userRepo, otpSvc: otpSvc}
}

// ==================== 注册与激活 ====================

// Register 注册新用户
// 账号创建后处于未激活状态，同时生成首个 OTP 会话并投递验证码
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleCustomer
	}
	// 管理员账号只能通过邀请产生
	if !role.Valid() || role.IsAdmin() {
		return nil, ErrRoleNotAllowed
	}
	if role.RequirePhone() && req.Phone == "" {
		return nil, ErrPhoneRequired
	}

	// 唯一性预检，并发窗口由唯一索引兜底
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}
	exists, err = s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: false, // 等待 OTP 验证
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	ref, err := s.otpSvc.GenerateAndNotify(ctx, user, OTPPurposeActivate)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		User:         s.toUserInfo(user),
		OTPReference: ref,
	}, nil
}

// VerifyAccount 提交验证码激活账号
// 验证通过后激活与会话清空在同一条 UPDATE 中完成，验证码单次有效
func (s *AuthService) VerifyAccount(ctx context.Context, req *dto.VerifyOTPRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.otpSvc.Verify(user, req.Code, req.Reference, time.Now()); err != nil {
		return err
	}

	return s.userRepo.ActivateAndClearOTP(ctx, user.ID)
}

// ResendOTP 重发验证码
// 等价于重新 generate：无条件作废旧会话，后写覆盖先写
func (s *AuthService) ResendOTP(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	return s.otpSvc.GenerateAndNotify(ctx, user, OTPPurposeActivate)
}

// ==================== 登录与 Token ====================

// Login 用户登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 凭证正确但未激活的账号在登录边界拒绝
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, string(user.Role), user.IsSuperuser)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         s.toUserInfo(user),
	}, nil
}

// RefreshToken 刷新 Token
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 验证是否为 Refresh Token
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 确保用户仍然有效
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrAccountInactive
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, string(user.Role), user.IsSuperuser)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// ==================== 密码找回与修改 ====================

// ForgotPassword 发起找回密码：生成重置用途的 OTP 会话
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	return s.otpSvc.GenerateAndNotify(ctx, user, OTPPurposeReset)
}

// ResetPassword 凭重置会话设置新密码
// 新密码写入与会话清空在同一条 UPDATE 中完成，会话单次有效
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.otpSvc.Verify(user, req.Code, req.Reference, time.Now()); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.ResetPasswordAndClearOTP(ctx, user.ID, string(hashedPassword))
}

// ChangePassword 修改密码 (已登录)
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	// 验证旧密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// GetProfile 获取当前用户信息
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserInfo(user), nil
}

// ==================== 内部转换 ====================

func (s *AuthService) toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountInactive    = errors.New("账号未激活，请先完成 OTP 验证")
	ErrInvalidToken       = errors.New("Token 无效")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidOldPassword = errors.New("旧密码错误")
	ErrUsernameExists     = errors.New("用户名已存在")
	ErrEmailExists        = errors.New("邮箱已注册")
	ErrRoleNotAllowed     = errors.New("只能注册为买家或卖家")
	ErrPhoneRequired      = errors.New("买家和卖家必须填写手机号")
)
