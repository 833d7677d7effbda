package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 商品 ====================

// ProductCreateRequest 创建商品请求
type ProductCreateRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description" binding:"omitempty"`
	CategoryID    int64           `json:"category_id" binding:"required,gt=0"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stock_quantity" binding:"omitempty,gte=0"`
	Attributes    json.RawMessage `json:"attributes" binding:"omitempty"`
}

// ProductUpdateRequest 更新商品请求，零值字段不更新 (价格/库存用指针区分)
type ProductUpdateRequest struct {
	Name          string           `json:"name" binding:"omitempty,max=200"`
	Description   *string          `json:"description" binding:"omitempty"`
	CategoryID    int64            `json:"category_id" binding:"omitempty,gt=0"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty"`
	StockQuantity *int             `json:"stock_quantity" binding:"omitempty,gte=0"`
	Attributes    json.RawMessage  `json:"attributes" binding:"omitempty"`
}

// ProductListRequest 商品列表请求
type ProductListRequest struct {
	CategoryID int64  `form:"category_id" binding:"omitempty,gt=0"`
	Keyword    string `form:"keyword" binding:"omitempty,max=100"`
	Page       int    `form:"page" binding:"omitempty,gte=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// ProductInfo 商品视图
// final_price 为解析时刻的到手价，已应用最优单条折扣
type ProductInfo struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	OwnerID       int64           `json:"owner_id"`
	OwnerName     string          `json:"owner,omitempty"`
	Attributes    json.RawMessage `json:"attributes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Discounts     []DiscountInfo  `json:"discounts,omitempty"`
}

// ProductListResponse 商品列表响应
type ProductListResponse struct {
	Total int64         `json:"total"`
	Items []ProductInfo `json:"items"`
}
