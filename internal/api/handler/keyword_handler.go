package handler

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/response"
	"SellerLens/internal/pkg/util"
	"SellerLens/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type KeywordHandler struct {
	keywordSvc service.KeywordService
}

func NewKeywordHandler(keywordSvc service.KeywordService) *KeywordHandler {
	return &KeywordHandler{
		keywordSvc: keywordSvc,
	}
}

// Search 去重关键词搜索
func (s *KeywordHandler) Search(c *gin.Context) {
	var query dto.KeywordSearchDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	page, err := s.keywordSvc.SearchKeywords(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *KeywordHandler) UpdateScores(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("keyword_id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	var scores dto.KeywordScoresDTO
	if err := c.ShouldBind(&scores); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&scores); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.keywordSvc.UpdateScores(c.Request.Context(), id, &scores); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *KeywordHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("keyword_id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	if err := s.keywordSvc.DeactivateKeyword(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
