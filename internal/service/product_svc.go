package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品 CRUD，含归属与角色校验
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, userRepo repository.UserRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// Create 发布商品，仅卖家或管理员
func (s *ProductService) Create(ctx context.Context, ownerID int64, req *dto.ProductCreateRequest) (*dto.ProductInfo, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}
	if !owner.Role.CanSell() {
		return nil, ErrSellerRequired
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	product := &model.Product{
		CategoryID:    req.CategoryID,
		OwnerID:       owner.ID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Attributes:    datatypes.JSON(req.Attributes),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	product.Category = category
	product.Owner = owner
	return s.toProductInfo(product, true, time.Now()), nil
}

// Get 商品详情 (公开)，附带折扣列表与到手价
func (s *ProductService) Get(ctx context.Context, id int64) (*dto.ProductInfo, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.toProductInfo(product, true, time.Now()), nil
}

// List 商品列表 (公开)，逐条计算到手价
func (s *ProductService) List(ctx context.Context, req *dto.ProductListRequest) (*dto.ProductListResponse, error) {
	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]dto.ProductInfo, 0, len(products))
	for i := range products {
		items = append(items, *s.toProductInfo(&products[i], false, now))
	}

	return &dto.ProductListResponse{Total: total, Items: items}, nil
}

// Update 更新商品，仅拥有者或管理员
func (s *ProductService) Update(ctx context.Context, actorID, id int64, req *dto.ProductUpdateRequest) (*dto.ProductInfo, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !actor.CanManageProduct(product) {
		return nil, ErrNotProductOwner
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		product.CategoryID = req.CategoryID
		product.Category = category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if len(req.Attributes) > 0 {
		product.Attributes = datatypes.JSON(req.Attributes)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.toProductInfo(product, true, time.Now()), nil
}

// Delete 删除商品，仅拥有者或管理员
func (s *ProductService) Delete(ctx context.Context, actorID, id int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return ErrUserNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !actor.CanManageProduct(product) {
		return ErrNotProductOwner
	}

	return s.productRepo.Delete(ctx, id)
}

// ==================== 内部转换 ====================

// toProductInfo 组装商品视图，到手价按 now 时刻解析
func (s *ProductService) toProductInfo(p *model.Product, detail bool, now time.Time) *dto.ProductInfo {
	info := &dto.ProductInfo{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		FinalPrice:    p.FinalPrice(now),
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		OwnerID:       p.OwnerID,
		CreatedAt:     p.CreatedAt,
	}
	if p.Category != nil {
		info.CategoryName = p.Category.Name
	}
	if p.Owner != nil {
		info.OwnerName = p.Owner.Username
	}

	if detail {
		info.Description = p.Description
		info.Attributes = json.RawMessage(p.Attributes)
		info.Discounts = make([]dto.DiscountInfo, 0, len(p.Discounts))
		for i := range p.Discounts {
			info.Discounts = append(info.Discounts, toDiscountInfo(&p.Discounts[i]))
		}
	}
	return info
}

// ==================== 错误定义 ====================

var (
	ErrProductNotFound = errors.New("商品不存在")
	ErrSellerRequired  = errors.New("只有卖家或管理员可以执行该操作")
	ErrNotProductOwner = errors.New("只能操作自己的商品")
	ErrInvalidPrice    = errors.New("价格不能为负数")
)
