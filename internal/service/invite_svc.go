package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/middleware"
	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
	"emb_shop_v1_202601/pkg/mailer"
)

// 业务常量
const (
	// InviteAcceptURL 邀请接受页，需与前端路由保持一致
	InviteAcceptURL = "https://yourfrontend.com/invite/accept/?token="
)

// ==================== InviteService 管理员邀请服务 ====================

// InviteService 管理员邀请的签发与接受
type InviteService struct {
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
	sender         mailer.Sender
}

// NewInviteService 创建邀请服务
func NewInviteService(userRepo repository.UserRepository, invitationRepo repository.InvitationRepository, sender mailer.Sender) *InviteService {
	return &InviteService{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		sender:         sender,
	}
}

// Issue 签发管理员邀请
// 路由层已有超管闸口，这里再校验一次，不依赖调用方
func (s *InviteService) Issue(ctx context.Context, inviterID int64, email string) (*model.Invitation, error) {
	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil || !inviter.CanInvite() {
		return nil, ErrInviteForbidden
	}

	invitation := model.NewInvitation(email, inviter.ID, time.Now())
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		// 同一邮箱只允许一条邀请，过期未用的旧邀请同样挡住重发
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrInvitationExists
		}
		return nil, err
	}

	if err := s.sender.Send(ctx, invitation.Email,
		"You're invited to join the Easy Money Broker Admin Panel",
		inviteMailBody(invitation.Token),
	); err != nil {
		log.Printf("[Mailer] 邀请邮件发送失败 (邀请已生效，不回滚): %v", err)
	}

	return invitation, nil
}

// Accept 接受邀请并创建管理员账号
// mark_used 为带条件的单条 UPDATE：并发 accept 至多一个赢家，
// 即使后续建号失败邀请也保持已消费 (宁可作废，不可重复建号)
func (s *InviteService) Accept(ctx context.Context, token, password string) (*dto.AcceptInviteResponse, error) {
	invitation, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}

	// 已消费与已过期在出口上不做区分
	if !invitation.IsValid() {
		return nil, ErrInvitationExpired
	}

	used, err := s.invitationRepo.MarkUsed(ctx, invitation.ID)
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, ErrInvitationExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 用户名取邮箱本地部分
	user := &model.User{
		Username: strings.SplitN(invitation.Email, "@", 2)[0],
		Email:    invitation.Email,
		Password: string(hashedPassword),
		Role:     model.RoleAdmin,
		IsActive: true, // 邀请即信任，无需 OTP 激活
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Username, string(user.Role), user.IsSuperuser)
	if err != nil {
		return nil, err
	}

	return &dto.AcceptInviteResponse{
		User: &dto.UserInfo{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      string(user.Role),
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		},
		AccessToken: accessToken,
	}, nil
}

// List 邀请审计列表
func (s *InviteService) List(ctx context.Context, page, pageSize int) (*dto.InvitationListResponse, error) {
	invitations, total, err := s.invitationRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.InvitationInfo, 0, len(invitations))
	for i := range invitations {
		inv := &invitations[i]
		items = append(items, dto.InvitationInfo{
			ID:        inv.ID,
			Email:     inv.Email,
			InvitedBy: inv.InvitedByID,
			IsUsed:    inv.IsUsed,
			CreatedAt: inv.CreatedAt,
			ExpiresAt: inv.ExpiresAt,
		})
	}

	return &dto.InvitationListResponse{Total: total, Items: items}, nil
}

// inviteMailBody 邀请邮件正文，链接内嵌 token
func inviteMailBody(token string) string {
	link := InviteAcceptURL + token
	return fmt.Sprintf(`
        <h2>Admin Invitation</h2>
        <p>Hello,</p>
        <p>You've been invited to join the <b>Easy Money Broker Admin Panel</b>.</p>
        <p>Click below to set your password and activate your account:</p>
        <a href="%s" target="_blank">Accept Invitation</a>
        <p>This link expires in 3 days.</p>
        `, link)
}

// ==================== 错误定义 ====================

var (
	ErrInviteForbidden    = errors.New("仅超级管理员可以邀请新管理员")
	ErrInvitationExists   = errors.New("该邮箱已存在邀请")
	ErrInvitationNotFound = errors.New("邀请不存在或 token 无效")
	ErrInvitationExpired  = errors.New("邀请已过期或已被使用")
)
