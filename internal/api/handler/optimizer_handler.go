package handler

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/response"
	"SellerLens/internal/service"
	"io"

	"github.com/gin-gonic/gin"
)

type OptimizerResponse struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type OptimizerHandler struct {
	optimizerSvc service.OptimizerService
}

func NewOptimizerHandler(optimizerSvc service.OptimizerService) *OptimizerHandler {
	return &OptimizerHandler{
		optimizerSvc: optimizerSvc,
	}
}

// Compose 文案生成，SSE 流式返回
func (s *OptimizerHandler) Compose(c *gin.Context) {
	var req dto.OptimizerComposeDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	channel, sessionID, err := s.optimizerSvc.Compose(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Transfer-Encoding", "chunked")

	sentSession := false
	c.Stream(func(w io.Writer) bool {
		if !sentSession {
			c.SSEvent("", OptimizerResponse{
				Type:    "session_id",
				Content: sessionID,
			})
			sentSession = true
			return true
		}

		if msg, ok := <-channel; ok {
			c.SSEvent("", OptimizerResponse{
				Type:    "message",
				Content: msg,
			})
			return true
		}

		c.SSEvent("", OptimizerResponse{
			Type:    "done",
			Content: "EOF",
		})
		return false
	})
}

// History 某次会话的历史消息
func (s *OptimizerHandler) History(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	messages, err := s.optimizerSvc.History(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

// Sessions 当前用户最近的会话列表
func (s *OptimizerHandler) Sessions(c *gin.Context) {
	userID := c.GetUint64("user_id")

	sessions, err := s.optimizerSvc.ListSessions(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sessions)
}
