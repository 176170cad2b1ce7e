package handler

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/response"
	"SellerLens/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SubscriberHandler struct {
	subscriberSvc service.SubscriberService
}

func NewSubscriberHandler(subscriberSvc service.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{
		subscriberSvc: subscriberSvc,
	}
}

func (s *SubscriberHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.subscriberSvc.Subscribe(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var req dto.SubscribeDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.subscriberSvc.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SubscriberHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	rows, total, err := s.subscriberSvc.ListSubscribers(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]any{
		"rows":  rows,
		"total": total,
	})
}
