package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product 商品，归属唯一卖家和唯一分类
type Product struct {
	BaseModel
	CategoryID int64     `gorm:"index;not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"-"`

	OwnerID int64 `gorm:"index;not null" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// 定价使用精确小数，货币精度 2 位
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`

	// 扩展属性 (颜色/尺寸等自由字段)
	Attributes datatypes.JSON `json:"attributes,omitempty"`

	Discounts []Discount `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
