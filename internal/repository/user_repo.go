package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"emb_shop_v1_202601/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// OTP 会话：三个字段始终在同一条 UPDATE 里整体覆盖/清空
	UpdateOTPSession(ctx context.Context, id int64, code, ref string, issuedAt time.Time) error
	ActivateAndClearOTP(ctx context.Context, id int64) error
	ResetPasswordAndClearOTP(ctx context.Context, id int64, hashedPassword string) error

	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 根据 ID 获取用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByEmail 根据邮箱获取用户 (邮箱是登录主键)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// ExistsByEmail 检查邮箱是否已注册
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ExistsByUsername 检查用户名是否已被占用
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// UpdateOTPSession 覆盖写入新的 OTP 会话
// 单条 UPDATE，靠存储层的行更新原子性保证并发 generate 时 last-write-wins
func (r *userRepository) UpdateOTPSession(ctx context.Context, id int64, code, ref string, issuedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"otp_code":      code,
			"otp_ref":       ref,
			"otp_issued_at": issuedAt,
		}).Error
}

// ActivateAndClearOTP 激活账号并清空 OTP 会话，防止验证码重放
func (r *userRepository) ActivateAndClearOTP(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":     true,
			"otp_code":      "",
			"otp_ref":       nil,
			"otp_issued_at": nil,
		}).Error
}

// ResetPasswordAndClearOTP 写入新密码并清空 OTP 会话，同一条 UPDATE 保证会话单次消费
func (r *userRepository) ResetPasswordAndClearOTP(ctx context.Context, id int64, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":      hashedPassword,
			"otp_code":      "",
			"otp_ref":       nil,
			"otp_issued_at": nil,
		}).Error
}

// UpdatePassword 更新密码 (已登录用户修改密码)
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}
