package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 折扣解析 ====================

var hundred = decimal.NewFromInt(100)

// BestDiscountAmount 计算 now 时刻可用的最优单条折扣金额
// 多条规则同时生效时取最大的一条，不叠加 (业务约定，勿改成求和)
// 纯函数：全程精确小数运算，不做舍入
func BestDiscountAmount(price decimal.Decimal, discounts []Discount, now time.Time) decimal.Decimal {
	best := decimal.Zero
	for i := range discounts {
		d := &discounts[i]
		if !d.AppliesAt(now) {
			continue
		}

		var amount decimal.Decimal
		switch d.Type {
		case DiscountPercent:
			amount = price.Mul(d.Value).Div(hundred)
		case DiscountFixed:
			amount = d.Value
		default:
			continue
		}

		if amount.GreaterThan(best) {
			best = amount
		}
	}
	return best
}

// FinalPrice 计算 now 时刻的商品到手价
// 到手价 = max(原价 - 最优折扣金额, 0)，只在最后做一次 round-half-up 保留 2 位
func (p *Product) FinalPrice(now time.Time) decimal.Decimal {
	final := p.Price.Sub(BestDiscountAmount(p.Price, p.Discounts, now))
	if final.IsNegative() {
		final = decimal.Zero
	}
	return final.Round(2)
}
