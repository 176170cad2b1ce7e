package llm

import "github.com/tmc/langchaingo/llms"

// DefineTopKeywordsTool 定义站内关键词检索工具的元数据
func DefineTopKeywordsTool() llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        "top_search_keywords",
			Description: "查询平台买家搜索数据中某个类目下的头部关键词，包含搜索量、点击与转化评分。当你需要为商品文案挑选高流量关键词时，请调用此工具。",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category": map[string]any{
						"type":        "string",
						"description": "一级类目名称，例如：'Women's Clothing'，留空表示全站",
					},
					"metric": map[string]any{
						"type":        "string",
						"description": "关键词榜单类型：top（热搜）、high-potential（高潜）、rising（飙升）",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "返回的关键词数量，默认 20，最大 50",
					},
				},
				"required": []string{"metric"},
			},
		},
	}
}
