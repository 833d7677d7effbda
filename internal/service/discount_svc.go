package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
)

var percentCeiling = decimal.NewFromInt(100)

// ==================== DiscountService 折扣服务 ====================

// DiscountService 折扣 CRUD，含归属与规则校验
type DiscountService struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
}

// NewDiscountService 创建折扣服务
func NewDiscountService(discountRepo repository.DiscountRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

// Create 为商品创建折扣，仅商品拥有者或管理员
func (s *DiscountService) Create(ctx context.Context, actorID int64, req *dto.DiscountCreateRequest) (*dto.DiscountInfo, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}
	if !actor.Role.CanSell() {
		return nil, ErrSellerRequired
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !actor.CanManageProduct(product) {
		return nil, ErrNotProductOwner
	}

	dType := model.DiscountType(req.Type)
	if err := validateDiscountRule(dType, req.Value, req.StartAt, req.EndAt); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	discount := &model.Discount{
		ProductID:   req.ProductID,
		CreatedByID: actor.ID,
		Type:        dType,
		Value:       req.Value,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Active:      active,
	}
	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}

	info := toDiscountInfo(discount)
	return &info, nil
}

// ListByProduct 商品下的折扣列表
func (s *DiscountService) ListByProduct(ctx context.Context, productID int64) ([]dto.DiscountInfo, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	discounts, err := s.discountRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DiscountInfo, 0, len(discounts))
	for i := range discounts {
		items = append(items, toDiscountInfo(&discounts[i]))
	}
	return items, nil
}

// Update 更新折扣，仅创建人或管理员
func (s *DiscountService) Update(ctx context.Context, actorID, id int64, req *dto.DiscountUpdateRequest) (*dto.DiscountInfo, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	if !actor.CanManageDiscount(discount) {
		return nil, ErrNotDiscountOwner
	}

	if req.Type != "" {
		discount.Type = model.DiscountType(req.Type)
	}
	if req.Value != nil {
		discount.Value = *req.Value
	}
	if req.StartAt != nil {
		discount.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		discount.EndAt = req.EndAt
	}
	if req.Active != nil {
		discount.Active = *req.Active
	}

	// 更新后的整体规则重新校验
	if err := validateDiscountRule(discount.Type, discount.Value, discount.StartAt, discount.EndAt); err != nil {
		return nil, err
	}

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, err
	}

	info := toDiscountInfo(discount)
	return &info, nil
}

// Delete 删除折扣，仅创建人或管理员
func (s *DiscountService) Delete(ctx context.Context, actorID, id int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return ErrUserNotFound
	}

	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return ErrDiscountNotFound
	}
	if !actor.CanManageDiscount(discount) {
		return ErrNotDiscountOwner
	}

	return s.discountRepo.Delete(ctx, id)
}

// ==================== 规则校验与转换 ====================

// validateDiscountRule 折扣不变量：
// 类型合法、金额非负、percent 不超过 100、窗口两端齐备时 end 必须晚于 start
func validateDiscountRule(dType model.DiscountType, value decimal.Decimal, startAt, endAt *time.Time) error {
	if !dType.Valid() {
		return ErrInvalidDiscountType
	}
	if value.IsNegative() {
		return ErrInvalidDiscountValue
	}
	if dType == model.DiscountPercent && value.GreaterThan(percentCeiling) {
		return ErrInvalidDiscountValue
	}
	if startAt != nil && endAt != nil && !endAt.After(*startAt) {
		return ErrInvalidDiscountWindow
	}
	return nil
}

func toDiscountInfo(d *model.Discount) dto.DiscountInfo {
	return dto.DiscountInfo{
		ID:        d.ID,
		ProductID: d.ProductID,
		Type:      string(d.Type),
		Value:     d.Value,
		StartAt:   d.StartAt,
		EndAt:     d.EndAt,
		Active:    d.Active,
		CreatedBy: d.CreatedByID,
		CreatedAt: d.CreatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrDiscountNotFound      = errors.New("折扣不存在")
	ErrNotDiscountOwner      = errors.New("只能操作自己创建的折扣")
	ErrInvalidDiscountType   = errors.New("折扣类型必须为 percent 或 fixed")
	ErrInvalidDiscountValue  = errors.New("折扣数值无效：必须非负，percent 不得超过 100")
	ErrInvalidDiscountWindow = errors.New("结束时间必须晚于开始时间")
)
