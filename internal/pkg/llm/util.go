package llm

import (
	"SellerLens/internal/api/config"
	"context"
	log "log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
)

type StreamFunc func(ctx context.Context, chunk []byte) error

func readPrompt(file string) string {
	if file == "" {
		return ""
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.Error("读取prompt文件失败", "err", err)
		return ""
	}
	return string(data)
}

func fetchAgentCall(ctx context.Context, messages []llms.MessageContent, tools []llms.Tool, temp float64, streamFunc StreamFunc) (*llms.ContentResponse, error) {
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer TextSem.Release(1)

	log.Info("正在请求AI大模型")

	if streamFunc != nil {
		return llmClient.GenerateContent(ctx, messages,
			llms.WithModel(config.Cfg.LLM.TextModel),
			llms.WithTemperature(temp),
			llms.WithTools(tools),
			llms.WithStreamingFunc(streamFunc),
		)
	}

	return llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.TextModel),
		llms.WithTemperature(temp),
		llms.WithTools(tools),
	)
}
