package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"emb_shop_v1_202601/internal/model"
)

// ==================== DiscountRepository 折扣仓库 ====================

// DiscountRepository 折扣仓库接口
type DiscountRepository interface {
	Create(ctx context.Context, discount *model.Discount) error
	GetByID(ctx context.Context, id int64) (*model.Discount, error)
	Update(ctx context.Context, discount *model.Discount) error
	Delete(ctx context.Context, id int64) error
	ListByProduct(ctx context.Context, productID int64) ([]model.Discount, error)
	// DeactivateExpired 把窗口已结束的折扣批量置为 inactive，返回影响行数
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ==================== 实现 ====================

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣仓库
func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

// Create 创建折扣
func (r *discountRepository) Create(ctx context.Context, discount *model.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

// GetByID 根据 ID 获取折扣
func (r *discountRepository) GetByID(ctx context.Context, id int64) (*model.Discount, error) {
	var discount model.Discount
	err := r.db.WithContext(ctx).Preload("Product").First(&discount, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}

// Update 更新折扣
func (r *discountRepository) Update(ctx context.Context, discount *model.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

// Delete 删除折扣（软删除）
func (r *discountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Discount{}, id).Error
}

// ListByProduct 商品下的折扣列表，走 (product_id, active) 组合索引
func (r *discountRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&discounts).Error
	return discounts, err
}

// DeactivateExpired 定时任务清场：窗口已关闭的规则不必再参与解析过滤
func (r *discountRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Discount{}).
		Where("active = ? AND end_at IS NOT NULL AND end_at < ?", true, now).
		Update("active", false)
	return res.RowsAffected, res.Error
}
