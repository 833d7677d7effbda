package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"emb_shop_v1_202601/internal/api/dto"
	"emb_shop_v1_202601/internal/middleware"
	"emb_shop_v1_202601/internal/service"
)

// ==================== DiscountController 折扣控制器 ====================

// DiscountController 折扣控制器
type DiscountController struct {
	discountService *service.DiscountService
}

// NewDiscountController 创建折扣控制器
func NewDiscountController(discountService *service.DiscountService) *DiscountController {
	return &DiscountController{discountService: discountService}
}

// List 商品折扣列表
// @Summary 商品折扣列表
// @Tags Discount
// @Produce json
// @Security BearerAuth
// @Param product_id query int true "商品 ID"
// @Success 200 {array} dto.DiscountInfo
// @Failure 404 {object} map[string]interface{}
// @Router /discounts [get]
func (c *DiscountController) List(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Query("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: product_id 必填且为正整数",
		})
		return
	}

	items, err := c.discountService.ListByProduct(ctx.Request.Context(), productID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": items,
	})
}

// Create 创建折扣
// @Summary 创建折扣 (商品拥有者/管理员)
// @Tags Discount
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DiscountCreateRequest true "折扣信息"
// @Success 201 {object} dto.DiscountInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /discounts [post]
func (c *DiscountController) Create(ctx *gin.Context) {
	var req dto.DiscountCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	actorID := middleware.GetUserID(ctx)

	discount, err := c.discountService.Create(ctx.Request.Context(), actorID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "折扣创建成功",
		"data":    discount,
	})
}

// Update 更新折扣
// @Summary 更新折扣 (创建人/管理员)
// @Tags Discount
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "折扣 ID"
// @Param request body dto.DiscountUpdateRequest true "折扣信息"
// @Success 200 {object} dto.DiscountInfo
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /discounts/{id} [put]
func (c *DiscountController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	var req dto.DiscountUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	actorID := middleware.GetUserID(ctx)

	discount, err := c.discountService.Update(ctx.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "折扣更新成功",
		"data":    discount,
	})
}

// Delete 删除折扣
// @Summary 删除折扣 (创建人/管理员)
// @Tags Discount
// @Produce json
// @Security BearerAuth
// @Param id path int true "折扣 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /discounts/{id} [delete]
func (c *DiscountController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	actorID := middleware.GetUserID(ctx)

	if err := c.discountService.Delete(ctx.Request.Context(), actorID, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "折扣删除成功",
	})
}
