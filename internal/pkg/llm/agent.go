package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"golang.org/x/sync/errgroup"
)

var tools = []llms.Tool{
	DefineTopKeywordsTool(),
}

type Agent interface {
	// Compose 单轮文案生成，推理文本实时写入返回的通道
	Compose(ctx context.Context, userInput string) chan string
}

type AgentImpl struct {
	handler *ToolHandler
}

func NewAgent(handler *ToolHandler) Agent {
	return &AgentImpl{
		handler: handler,
	}
}

func (s *AgentImpl) Compose(ctx context.Context, userInput string) chan string {
	out := make(chan string, 20)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(optimizerPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userInput),
			},
		},
	}

	go func() {
		defer close(out)

		err := s.runAgentLoopStream(ctx, messages, out, 5)
		if err != nil {
			out <- fmt.Sprintf("\n\n> ⚠️ **系统错误**: %v", err)
		}
	}()

	return out
}

// runAgentLoopStream 将推理过程中的文本和工具状态实时推向 out 通道
func (s *AgentImpl) runAgentLoopStream(ctx context.Context, messages []llms.MessageContent, out chan string, maxIter int) error {
	for i := 0; i < maxIter; i++ {
		var contentBuffer strings.Builder

		streamFunc := func(ctx context.Context, chunk []byte) error {
			str := string(chunk)
			if strings.HasPrefix(str, "[{") || strings.Contains(str, "\"tool_calls\"") {
				return nil
			}
			contentBuffer.WriteString(str)
			out <- str
			return nil
		}

		resp, err := fetchAgentCall(ctx, messages, tools, 0.7, streamFunc)
		if err != nil {
			return err
		}

		choice := resp.Choices[0]

		// 模型决定直接回复文本
		if len(choice.ToolCalls) == 0 {
			if contentBuffer.Len() > 0 || choice.Content != "" {
				return nil
			}
			continue
		}

		// 模型决定调用工具 - 向用户同步动作
		for _, tc := range choice.ToolCalls {
			out <- fmt.Sprintf("\n\n> 🛠️ **系统正在执行**: `%s` ...\n\n", tc.FunctionCall.Name)
		}

		// 模型决定调用工具 - 记录模型意图
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeAI,
			Parts: s.convertToolCallsToParts(choice.ToolCalls),
		})

		// 并行执行工具，并同步响应
		toolMsgs, err := s.executeTools(ctx, choice.ToolCalls)
		if err != nil {
			return err
		}
		messages = append(messages, toolMsgs...)
	}
	out <- "\n\n抱歉，由于检索轮次过多，我无法在安全时间内为您生成文案。"
	return nil
}

// executeTools 通用的并行工具执行器
func (s *AgentImpl) executeTools(ctx context.Context, toolCalls []llms.ToolCall) ([]llms.MessageContent, error) {
	g, gCtx := errgroup.WithContext(ctx)
	toolResponses := make([]llms.ContentPart, len(toolCalls))

	for idx, tc := range toolCalls {
		i, toolCall := idx, tc
		g.Go(func() error {
			handler := s.handler.GetHandleFunction(toolCall.FunctionCall.Name)
			if handler == nil {
				return fmt.Errorf("未定义的工具: %s", toolCall.FunctionCall.Name)
			}

			result, err := handler(gCtx, toolCall.FunctionCall.Arguments)
			if err != nil {
				result = fmt.Sprintf("执行失败: %v", err)
			}

			toolResponses[i] = llms.ToolCallResponse{
				ToolCallID: toolCall.ID,
				Name:       toolCall.FunctionCall.Name,
				Content:    result,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var msgs []llms.MessageContent
	for _, tr := range toolResponses {
		msgs = append(msgs, llms.MessageContent{
			Role:  llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{tr},
		})
	}
	return msgs, nil
}

// convertToolCallsToParts 将工具调用转换为 ContentPart
func (s *AgentImpl) convertToolCallsToParts(tcs []llms.ToolCall) []llms.ContentPart {
	parts := make([]llms.ContentPart, len(tcs))
	for i, tc := range tcs {
		parts[i] = tc
	}
	return parts
}
