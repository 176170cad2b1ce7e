package handler

import (
	"SellerLens/internal/pkg/response"
	"SellerLens/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categorySvc: categorySvc,
	}
}

// GetTree 三级类目树，节点带去重关键词计数
func (s *CategoryHandler) GetTree(c *gin.Context) {
	uploadPeriod := c.Query("upload_period")
	metric := c.Query("metric")

	tree, err := s.categorySvc.GetCategoryTree(c.Request.Context(), uploadPeriod, metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tree)
}

// GetTypedCategories 某类型下的一级类目列表
func (s *CategoryHandler) GetTypedCategories(c *gin.Context) {
	keywordType := c.Param("type")

	nodes, err := s.categorySvc.GetTypedCategories(c.Request.Context(), keywordType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nodes)
}
