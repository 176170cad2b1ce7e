package handler

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/response"
	"SellerLens/internal/pkg/util"
	"SellerLens/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activitySvc service.ActivityService
}

func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activitySvc: activitySvc,
	}
}

// Track HTTP 埋点入口，匿名可用
func (s *ActivityHandler) Track(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.ActivityTrackDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.activitySvc.Track(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Summary 管理端活跃汇总
func (s *ActivityHandler) Summary(c *gin.Context) {
	granularity := c.DefaultQuery("granularity", service.GranularityDay)
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	buckets, err := s.activitySvc.Summary(c.Request.Context(), granularity, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, buckets)
}
