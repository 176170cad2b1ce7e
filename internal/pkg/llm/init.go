package llm

import (
	"SellerLens/internal/api/config"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

var optimizerPrompt string

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	// 从prompt txt文件中读取prompt，缺失时使用内置提示词
	optimizerPrompt = readPrompt(cfg.PromptsPath.ListingOptimizer)
	if optimizerPrompt == "" {
		optimizerPrompt = defaultOptimizerPrompt
	}

	return nil
}

// Ready 优化器是可选能力，未配置模型时接口直接拒绝
func Ready() bool {
	return llmClient != nil
}

const defaultOptimizerPrompt = `你是一名跨境电商 Listing 优化专家。用户会给出商品描述，
你需要调用工具查询该类目下的热门搜索关键词，结合搜索量和转化数据，
为商品产出优化后的标题、五点描述和搜索关键词建议。
要求：标题不超过 200 字符，自然嵌入高搜索量关键词；五点描述突出卖点；
关键词建议按搜索量降序列出并说明理由。全程使用用户输入的语言回复。`
