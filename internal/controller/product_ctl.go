package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/middleware"
	"emb_shop_v1_202601/internal/service"
)

// ==================== ProductController 商品控制器 ====================

// ProductController 商品控制器
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List 商品列表
// @Summary 商品列表
// @Tags Product
// @Produce json
// @Param category_id query int false "分类筛选"
// @Param keyword query string false "名称关键词"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.ProductListResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	var req dto.ProductListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.productService.List(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": resp,
	})
}

// GetDetail 商品详情
// @Summary 商品详情 (含折扣与到手价)
// @Tags Product
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} dto.ProductInfo
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [get]
func (c *ProductController) GetDetail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	product, err := c.productService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": product,
	})
}

// Create 发布商品
// @Summary 发布商品 (卖家/管理员)
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductCreateRequest true "商品信息"
// @Success 201 {object} dto.ProductInfo
// @Failure 403 {object} map[string]interface{}
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	ownerID := middleware.GetUserID(ctx)

	product, err := c.productService.Create(ctx.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "商品发布成功",
		"data":    product,
	})
}

// Update 更新商品
// @Summary 更新商品 (拥有者/管理员)
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Param request body dto.ProductUpdateRequest true "商品信息"
// @Success 200 {object} dto.ProductInfo
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	var req dto.ProductUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	actorID := middleware.GetUserID(ctx)

	product, err := c.productService.Update(ctx.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "商品更新成功",
		"data":    product,
	})
}

// Delete 删除商品
// @Summary 删除商品 (拥有者/管理员)
// @Tags Product
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	actorID := middleware.GetUserID(ctx)

	if err := c.productService.Delete(ctx.Request.Context(), actorID, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "商品删除成功",
	})
}
