package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/service"
)

// ==================== CategoryController 分类控制器 ====================

// CategoryController 分类控制器
type CategoryController struct {
	categoryService *service.CategoryService
}

// NewCategoryController 创建分类控制器
func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// List 分类树
// @Summary 分类树 (顶级分类含嵌套子分类)
// @Tags Category
// @Produce json
// @Success 200 {array} dto.CategoryNode
// @Router /categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	tree, err := c.categoryService.ListTree(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": tree,
	})
}

// Create 创建分类
// @Summary 创建分类
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryRequest true "分类信息"
// @Success 201 {object} model.Category
// @Failure 403 {object} map[string]interface{}
// @Router /categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	category, err := c.categoryService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "分类创建成功",
		"data":    category,
	})
}

// Update 更新分类
// @Summary 更新分类
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类 ID"
// @Param request body dto.CategoryRequest true "分类信息"
// @Success 200 {object} model.Category
// @Failure 404 {object} map[string]interface{}
// @Router /categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	category, err := c.categoryService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "分类更新成功",
		"data":    category,
	})
}

// Delete 删除分类
// @Summary 删除分类
// @Tags Category
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	if err := c.categoryService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "分类删除成功",
	})
}
