package handler

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/response"
	"SellerLens/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadSvc service.UploadService
}

func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadSvc: uploadSvc,
	}
}

// ReplacePeriod 整体替换一个 (类型, 周期) 分区的数据
func (s *UploadHandler) ReplacePeriod(c *gin.Context) {
	keywordType := c.Param("type")
	uploadPeriod := c.Param("period")
	userID := c.GetUint64("user_id")

	var req dto.ReplacePeriodDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.uploadSvc.ReplacePeriod(c.Request.Context(), keywordType, uploadPeriod, &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeletePeriod 软删一个分区，幂等
func (s *UploadHandler) DeletePeriod(c *gin.Context) {
	keywordType := c.Param("type")
	uploadPeriod := c.Param("period")

	removed, err := s.uploadSvc.DeletePeriod(c.Request.Context(), keywordType, uploadPeriod)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{
		"removed": removed,
	})
}

// ListPeriods 管理端全量周期清单
func (s *UploadHandler) ListPeriods(c *gin.Context) {
	periods, err := s.uploadSvc.ListPeriods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, periods)
}

// ListPeriodOptions 某类型下可选周期，带展示标签
func (s *UploadHandler) ListPeriodOptions(c *gin.Context) {
	keywordType := c.Query("type")

	options, err := s.uploadSvc.ListPeriodOptions(c.Request.Context(), keywordType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, options)
}

// ListFiles 上传归档清单
func (s *UploadHandler) ListFiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	files, total, err := s.uploadSvc.ListUploadFiles(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]any{
		"rows":  files,
		"total": total,
	})
}
