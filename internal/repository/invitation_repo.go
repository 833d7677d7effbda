package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"emb_shop_v1_202601/internal/model"
)

// ==================== InvitationRepository 邀请仓库 ====================

// InvitationRepository 邀请仓库接口
type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetByEmail(ctx context.Context, email string) (*model.Invitation, error)
	// MarkUsed 条件更新：仅当 is_used 仍为 false 时打标记
	// 返回 false 表示已被并发的另一次 accept 消费
	MarkUsed(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]model.Invitation, int64, error)
}

// ==================== 实现 ====================

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository 创建邀请仓库
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

// Create 创建邀请，邮箱唯一约束冲突会以 gorm.ErrDuplicatedKey 返回
func (r *invitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

// GetByToken 根据 token 获取邀请
func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invitation, err
}

// GetByEmail 根据受邀邮箱获取邀请
func (r *invitationRepository) GetByEmail(ctx context.Context, email string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invitation, err
}

// MarkUsed 消费邀请
// check-then-set 在同一条 UPDATE 里完成，并发 accept 至多一个赢家
func (r *invitationRepository) MarkUsed(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Invitation{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	return res.RowsAffected > 0, res.Error
}

// List 邀请列表 (审计用，按签发时间倒序)
func (r *invitationRepository) List(ctx context.Context, page, pageSize int) ([]model.Invitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Invitation{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var invitations []model.Invitation
	err := query.
		Order("id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&invitations).Error

	return invitations, total, err
}
