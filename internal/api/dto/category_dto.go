package dto

// ==================== 分类 ====================

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty"`
	ParentID    *int64 `json:"parent_id" binding:"omitempty,gt=0"`
}

// CategoryNode 分类树节点
type CategoryNode struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ParentID    *int64         `json:"parent_id"`
	Children    []CategoryNode `json:"children"`
}
