package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
)

// ==================== 测试辅助 ====================

type catalogFixture struct {
	db       *gorm.DB
	products *ProductService
	seller   *model.User
	customer *model.User
	admin    *model.User
	category *model.Category
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	db := setupCatalogTestDB(t)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	f := &catalogFixture{
		db:       db,
		products: NewProductService(productRepo, categoryRepo, userRepo),
		seller:   &model.User{Username: "seller", Email: "seller@test.com", Password: "x", Role: model.RoleSeller, IsActive: true},
		customer: &model.User{Username: "customer", Email: "customer@test.com", Password: "x", Role: model.RoleCustomer, IsActive: true},
		admin:    &model.User{Username: "admin", Email: "admin@test.com", Password: "x", Role: model.RoleAdmin, IsActive: true},
		category: &model.Category{Name: "Gadgets"},
	}
	for _, u := range []*model.User{f.seller, f.customer, f.admin} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("创建用户失败: %v", err)
		}
	}
	if err := db.Create(f.category).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	return f
}

func (f *catalogFixture) createProduct(t *testing.T, price string) *dto.ProductInfo {
	t.Helper()
	info, err := f.products.Create(context.Background(), f.seller.ID, &dto.ProductCreateRequest{
		Name:          "Widget",
		CategoryID:    f.category.ID,
		Price:         mustDecimal(t, price),
		StockQuantity: 10,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	return info
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("解析小数失败: %v", err)
	}
	return v
}

// ==================== 单元测试 ====================

func TestProductService_CreateBySeller(t *testing.T) {
	f := newCatalogFixture(t)

	info := f.createProduct(t, "1000")
	if info.ID == 0 {
		t.Fatal("创建商品应返回 ID")
	}
	if !info.FinalPrice.Equal(mustDecimal(t, "1000")) {
		t.Errorf("无折扣时到手价应等于原价, got %s", info.FinalPrice)
	}
}

func TestProductService_CreateByCustomerRejected(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.products.Create(context.Background(), f.customer.ID, &dto.ProductCreateRequest{
		Name:       "Nope",
		CategoryID: f.category.ID,
		Price:      mustDecimal(t, "10"),
	})
	if err != ErrSellerRequired {
		t.Errorf("买家发布商品应返回 ErrSellerRequired, got %v", err)
	}
}

func TestProductService_CreateNegativePrice(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.products.Create(context.Background(), f.seller.ID, &dto.ProductCreateRequest{
		Name:       "Cheap",
		CategoryID: f.category.ID,
		Price:      mustDecimal(t, "-1"),
	})
	if err != ErrInvalidPrice {
		t.Errorf("负价格应返回 ErrInvalidPrice, got %v", err)
	}
}

func TestProductService_UpdateOwnership(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	info := f.createProduct(t, "1000")
	newPrice := mustDecimal(t, "1200")

	// 非拥有者不可改
	_, err := f.products.Update(ctx, f.customer.ID, info.ID, &dto.ProductUpdateRequest{Price: &newPrice})
	if err != ErrNotProductOwner {
		t.Errorf("非拥有者更新应返回 ErrNotProductOwner, got %v", err)
	}

	// 拥有者可改
	updated, err := f.products.Update(ctx, f.seller.ID, info.ID, &dto.ProductUpdateRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("拥有者更新失败: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Errorf("价格 = %s, want 1200", updated.Price)
	}

	// 管理员也可改任意商品
	adminPrice := mustDecimal(t, "900")
	if _, err := f.products.Update(ctx, f.admin.ID, info.ID, &dto.ProductUpdateRequest{Price: &adminPrice}); err != nil {
		t.Errorf("管理员更新失败: %v", err)
	}
}

func TestProductService_DeleteOwnership(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	info := f.createProduct(t, "50")

	if err := f.products.Delete(ctx, f.customer.ID, info.ID); err != ErrNotProductOwner {
		t.Errorf("非拥有者删除应返回 ErrNotProductOwner, got %v", err)
	}
	if err := f.products.Delete(ctx, f.seller.ID, info.ID); err != nil {
		t.Fatalf("拥有者删除失败: %v", err)
	}
	if _, err := f.products.Get(ctx, info.ID); err != ErrProductNotFound {
		t.Errorf("删除后查询应返回 ErrProductNotFound, got %v", err)
	}
}

// 详情接口带到手价：取最优单条折扣
func TestProductService_GetWithFinalPrice(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	info := f.createProduct(t, "1000")

	now := time.Now()
	later := now.Add(time.Hour)
	discounts := []model.Discount{
		{ProductID: info.ID, CreatedByID: f.seller.ID, Type: model.DiscountPercent, Value: mustDecimal(t, "10"), Active: true},
		{ProductID: info.ID, CreatedByID: f.seller.ID, Type: model.DiscountFixed, Value: mustDecimal(t, "150"), Active: true},
		{ProductID: info.ID, CreatedByID: f.seller.ID, Type: model.DiscountFixed, Value: mustDecimal(t, "500"), Active: true, StartAt: &later},
	}
	for i := range discounts {
		if err := f.db.Create(&discounts[i]).Error; err != nil {
			t.Fatalf("创建折扣失败: %v", err)
		}
	}

	detail, err := f.products.Get(ctx, info.ID)
	if err != nil {
		t.Fatalf("查询详情失败: %v", err)
	}
	// -150 优于 -100，未开始的 -500 不参与
	if !detail.FinalPrice.Equal(mustDecimal(t, "850")) {
		t.Errorf("到手价 = %s, want 850", detail.FinalPrice)
	}
}

func TestProductService_ListFilters(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	other := &model.Category{Name: "Other"}
	if err := f.db.Create(other).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	f.createProduct(t, "10")
	if _, err := f.products.Create(ctx, f.seller.ID, &dto.ProductCreateRequest{
		Name: "Gizmo Pro", CategoryID: other.ID, Price: mustDecimal(t, "20"),
	}); err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	// 按分类过滤
	resp, err := f.products.List(ctx, &dto.ProductListRequest{CategoryID: other.ID})
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].Name != "Gizmo Pro" {
		t.Errorf("分类过滤结果不符: total=%d", resp.Total)
	}

	// 按关键字过滤
	resp, err = f.products.List(ctx, &dto.ProductListRequest{Keyword: "gizmo"})
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("关键字过滤 total = %d, want 1", resp.Total)
	}
}
