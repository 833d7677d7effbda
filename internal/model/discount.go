package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 折扣类型 ====================

// DiscountType 折扣类型，封闭枚举
type DiscountType string

const (
	DiscountPercent DiscountType = "percent" // 按比例，value 不得超过 100
	DiscountFixed   DiscountType = "fixed"   // 固定金额
)

// Valid 是否为已知类型
func (t DiscountType) Valid() bool {
	return t == DiscountPercent || t == DiscountFixed
}

// ==================== 折扣 ====================

// Discount 时间窗折扣规则
// (product_id, active) 组合索引服务解析时的过滤查询
type Discount struct {
	BaseModel
	ProductID int64    `gorm:"index:idx_discounts_product_active,priority:1;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`

	CreatedByID int64 `gorm:"index;not null" json:"created_by"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"-"`

	Type  DiscountType    `gorm:"size:10;not null;column:discount_type" json:"discount_type"`
	Value decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"value"`

	// 活动窗口，任一端为空表示该方向不设限
	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	// 不带列默认值：布尔零值配合 default 标签会让显式的 false 丢失，
	// "默认开启" 由服务层在创建时落定
	Active bool `gorm:"index:idx_discounts_product_active,priority:2" json:"active"`
}

func (Discount) TableName() string {
	return "discounts"
}

// AppliesAt 规则在 now 时刻是否参与选择：
// active 为真，且窗口包含 now (窗口端点按闭区间处理)
func (d *Discount) AppliesAt(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartAt != nil && d.StartAt.After(now) {
		return false
	}
	if d.EndAt != nil && d.EndAt.Before(now) {
		return false
	}
	return true
}
