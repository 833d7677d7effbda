package service

import (
	"context"
	"errors"
	"time"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
	"emb_shop_v1_202601/pkg/utils"
)

// 分类树缓存：读多写少，内存缓存 10 分钟，写操作主动失效
const (
	categoryTreeCacheKey = "catalog:category_tree"
	categoryTreeCacheTTL = 10 * time.Minute
)

// ==================== CategoryService 分类服务 ====================

// CategoryService 分类树的查询与维护
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// ListTree 顶级分类及其嵌套子分类
func (s *CategoryService) ListTree(ctx context.Context) ([]dto.CategoryNode, error) {
	if cached, ok := utils.GetCache(categoryTreeCacheKey); ok {
		return cached.([]dto.CategoryNode), nil
	}

	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tree := buildCategoryTree(categories)
	utils.SetCache(categoryTreeCacheKey, tree, categoryTreeCacheTTL)
	return tree, nil
}

// Create 创建分类 (管理员)
func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error) {
	if req.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	utils.DeleteCache(categoryTreeCacheKey)
	return category, nil
}

// Update 更新分类 (管理员)
func (s *CategoryService) Update(ctx context.Context, id int64, req *dto.CategoryRequest) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.ParentID != nil {
		// 不允许挂到自己下面
		if *req.ParentID == id {
			return nil, ErrCategoryInvalidParent
		}
		parent, err := s.categoryRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.ParentID = req.ParentID

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	utils.DeleteCache(categoryTreeCacheKey)
	return category, nil
}

// Delete 删除分类 (管理员)
// 还挂着子分类或商品的分类不可删除
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	products, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 || products > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	utils.DeleteCache(categoryTreeCacheKey)
	return nil
}

// buildCategoryTree 全量分类在内存拼树，深度不限
func buildCategoryTree(categories []model.Category) []dto.CategoryNode {
	childrenByParent := make(map[int64][]*model.Category)
	var roots []*model.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			childrenByParent[*c.ParentID] = append(childrenByParent[*c.ParentID], c)
		}
	}

	var build func(c *model.Category) dto.CategoryNode
	build = func(c *model.Category) dto.CategoryNode {
		node := dto.CategoryNode{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			ParentID:    c.ParentID,
			Children:    []dto.CategoryNode{},
		}
		for _, child := range childrenByParent[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]dto.CategoryNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree
}

// ==================== 错误定义 ====================

var (
	ErrCategoryNotFound      = errors.New("分类不存在")
	ErrCategoryInvalidParent = errors.New("父分类设置无效")
	ErrCategoryInUse         = errors.New("分类下仍有子分类或商品，无法删除")
)
