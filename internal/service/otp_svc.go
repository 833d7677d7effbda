package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
	"emb_shop_v1_202601/pkg/mailer"
	"emb_shop_v1_202601/pkg/utils"
)

// ==================== OTPService OTP 会话服务 ====================

// OTPPurpose 一次 OTP 会话的用途，只影响邮件文案
type OTPPurpose string

const (
	OTPPurposeActivate OTPPurpose = "activate" // 注册激活
	OTPPurposeReset    OTPPurpose = "reset"    // 找回密码
)

// OTPService OTP 会话服务
// 负责会话的生成、覆盖与校验；激活/重置由调用方走各自的原子更新
type OTPService struct {
	userRepo repository.UserRepository
	sender   mailer.Sender
}

// NewOTPService 创建 OTP 会话服务
func NewOTPService(userRepo repository.UserRepository, sender mailer.Sender) *OTPService {
	return &OTPService{userRepo: userRepo, sender: sender}
}

// Generate 生成新的 OTP 会话并整体覆盖旧会话
// 返回引用标识和验证码；验证码经邮件送达，引用标识由 API 响应带回
func (s *OTPService) Generate(ctx context.Context, user *model.User) (ref, code string, err error) {
	code, err = utils.GenerateRandomDigits(6)
	if err != nil {
		return "", "", err
	}
	ref, err = utils.GenerateRandomString(32)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	if err = s.userRepo.UpdateOTPSession(ctx, user.ID, code, ref, now); err != nil {
		return "", "", err
	}

	// 同步内存里的副本，调用方随后读取时状态一致
	user.OTP = model.OTPSession{Code: code, Ref: &ref, IssuedAt: &now}
	return ref, code, nil
}

// GenerateAndNotify 生成会话并尽力投递验证码邮件
// 投递失败只记录日志，不回滚已写入的会话 (生成与投递解耦)
func (s *OTPService) GenerateAndNotify(ctx context.Context, user *model.User, purpose OTPPurpose) (string, error) {
	ref, code, err := s.Generate(ctx, user)
	if err != nil {
		return "", err
	}

	subject := "Your OTP Verification Code"
	if purpose == OTPPurposeReset {
		subject = "Your Password Reset Code"
	}

	if err := s.sender.Send(ctx, user.Email, subject, otpMailBody(user.Username, code)); err != nil {
		log.Printf("[Mailer] OTP 邮件发送失败 (会话已生效，不回滚): %v", err)
	}
	return ref, nil
}

// Verify 校验提交的引用标识与验证码
// 三项检查相互独立：引用不符 / 验证码不符 / 超过有效期，各自返回独立错误
func (s *OTPService) Verify(user *model.User, submittedCode, submittedRef string, now time.Time) error {
	session := &user.OTP
	if !session.Live() || *session.Ref != strings.TrimSpace(submittedRef) {
		return ErrOTPSessionMismatch
	}
	if session.Code != strings.TrimSpace(submittedCode) {
		return ErrOTPCodeMismatch
	}
	if session.ExpiredAt(now) {
		return ErrOTPExpired
	}
	return nil
}

// otpMailBody 验证码邮件正文，与前端文案保持一致 (10 分钟有效)
func otpMailBody(username, code string) string {
	return fmt.Sprintf(`
    <h2>Verify your account</h2>
    <p>Hello %s,</p>
    <p>Your OTP code is: <b>%s</b></p>
    <p>This code will expire in 10 minutes.</p>
    <p>Thank you for joining Easy Money Broker!</p>
    `, username, code)
}

// ==================== 错误定义 ====================

var (
	ErrOTPSessionMismatch = errors.New("会话无效，请重新获取验证码")
	ErrOTPCodeMismatch    = errors.New("验证码错误")
	ErrOTPExpired         = errors.New("验证码已过期")
)
