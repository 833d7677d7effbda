package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ==================== 测试辅助 ====================

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func tp(t time.Time) *time.Time { return &t }

// ==================== 单元测试 ====================

func TestFinalPrice_PercentDiscount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountPercent, Value: d("10"), Active: true},
		},
	}

	require.True(t, p.FinalPrice(now).Equal(d("900")), "9折后应为 900，实际 %s", p.FinalPrice(now))
}

func TestFinalPrice_FixedDiscount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountFixed, Value: d("200"), Active: true},
		},
	}

	require.True(t, p.FinalPrice(now).Equal(d("800")))
}

// 多条同时生效时取最优的一条，不叠加
func TestFinalPrice_BestSingleDiscountWins(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountPercent, Value: d("10"), Active: true},  // -100
			{Type: DiscountFixed, Value: d("150"), Active: true},   // -150 最优
		},
	}

	require.True(t, p.FinalPrice(now).Equal(d("850")), "应取最优单条 (-150)，实际 %s", p.FinalPrice(now))
}

func TestFinalPrice_WindowNotStarted(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountPercent, Value: d("50"), Active: true, StartAt: tp(now.Add(time.Hour))},
		},
	}

	require.True(t, p.FinalPrice(now).Equal(d("1000")), "未开始的折扣不参与解析")
}

func TestFinalPrice_WindowEnded(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountFixed, Value: d("300"), Active: true, EndAt: tp(now.Add(-time.Minute))},
		},
	}

	require.True(t, p.FinalPrice(now).Equal(d("1000")))
}

// 窗口端点按闭区间处理
func TestFinalPrice_WindowBoundaryInclusive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountFixed, Value: d("100"), Active: true, StartAt: tp(now), EndAt: tp(now)},
		},
	}

	require.True(t, p.FinalPrice(now).Equal(d("900")))
}

func TestFinalPrice_InactiveIgnored(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountFixed, Value: d("300"), Active: false},
		},
	}

	require.True(t, p.FinalPrice(now).Equal(d("1000")))
}

// 固定金额超过原价时到手价压到 0，不出现负数
func TestFinalPrice_ClampedAtZero(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("99.99"),
		Discounts: []Discount{
			{Type: DiscountFixed, Value: d("150"), Active: true},
		},
	}

	require.True(t, p.FinalPrice(now).IsZero())
}

// 只在最后做一次 round-half-up 保留 2 位
func TestFinalPrice_RoundHalfUpOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 33.33 * 15% = 4.9995，到手价 28.3305 → 28.33
	p := &Product{
		Price: d("33.33"),
		Discounts: []Discount{
			{Type: DiscountPercent, Value: d("15"), Active: true},
		},
	}
	require.True(t, p.FinalPrice(now).Equal(d("28.33")), "实际 %s", p.FinalPrice(now))

	// 10.05 * 50% = 5.025，到手价 5.025 → 5.03 (half-up)
	p2 := &Product{
		Price: d("10.05"),
		Discounts: []Discount{
			{Type: DiscountPercent, Value: d("50"), Active: true},
		},
	}
	require.True(t, p2.FinalPrice(now).Equal(d("5.03")), "实际 %s", p2.FinalPrice(now))
}

func TestFinalPrice_NoDiscounts(t *testing.T) {
	now := time.Now()

	p := &Product{Price: d("49.90")}
	require.True(t, p.FinalPrice(now).Equal(d("49.90")))
}

func TestBestDiscountAmount_UnknownTypeSkipped(t *testing.T) {
	now := time.Now()

	amount := BestDiscountAmount(d("100"), []Discount{
		{Type: DiscountType("bogus"), Value: d("50"), Active: true},
	}, now)

	require.True(t, amount.IsZero())
}

// 同一输入重复解析结果一致 (解析是纯函数)
func TestFinalPrice_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Product{
		Price: d("1000"),
		Discounts: []Discount{
			{Type: DiscountPercent, Value: d("10"), Active: true},
			{Type: DiscountFixed, Value: d("150"), Active: true},
		},
	}

	first := p.FinalPrice(now)
	for i := 0; i < 5; i++ {
		require.True(t, p.FinalPrice(now).Equal(first))
	}
}
