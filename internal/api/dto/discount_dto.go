package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 折扣 ====================

// DiscountCreateRequest 创建折扣请求
type DiscountCreateRequest struct {
	ProductID int64           `json:"product_id" binding:"required,gt=0"`
	Type      string          `json:"discount_type" binding:"required,oneof=percent fixed"`
	Value     decimal.Decimal `json:"value" binding:"required"`
	StartAt   *time.Time      `json:"start_at" binding:"omitempty"`
	EndAt     *time.Time      `json:"end_at" binding:"omitempty"`
	Active    *bool           `json:"active" binding:"omitempty"`
}

// DiscountUpdateRequest 更新折扣请求
type DiscountUpdateRequest struct {
	Type    string           `json:"discount_type" binding:"omitempty,oneof=percent fixed"`
	Value   *decimal.Decimal `json:"value" binding:"omitempty"`
	StartAt *time.Time       `json:"start_at" binding:"omitempty"`
	EndAt   *time.Time       `json:"end_at" binding:"omitempty"`
	Active  *bool            `json:"active" binding:"omitempty"`
}

// DiscountInfo 折扣视图
type DiscountInfo struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Type      string          `json:"discount_type"`
	Value     decimal.Decimal `json:"value"`
	StartAt   *time.Time      `json:"start_at"`
	EndAt     *time.Time      `json:"end_at"`
	Active    bool            `json:"active"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}
