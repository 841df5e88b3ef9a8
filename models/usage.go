package models

import "github.com/lib/pq"

type LLMOperation string

const (
	OperationAnalyze  LLMOperation = "analyze"
	OperationGenerate LLMOperation = "generate_outfit"
)

// LLMUsage is one collaborator call, kept for cost and failure tracking.
type LLMUsage struct {
	JsonModel
	Operation             LLMOperation   `gorm:"index" json:"operation"`
	Provider              string         `json:"provider"`
	LLMModel              string         `json:"llm_model"`
	Status                string         `json:"status"` // completed, failed
	Duration              float64        `json:"duration"` // in seconds
	ItemCount             int            `json:"item_count"`
	ResultCount           int            `json:"result_count"`
	Occasion              *string        `json:"occasion"`
	Weather               *string        `json:"weather"`
	Styles                pq.StringArray `gorm:"type:text[]" json:"styles"`
	LLMInputTokenCount    int32          `json:"llm_input_token_usage"`
	LLMOutputTokenCount   int32          `json:"llm_output_token_usage"`
	LLMTotalTokenCount    int32          `json:"llm_total_token_usage"`
	LLMThoughtsTokenCount int32          `json:"llm_thoughts_token_count"`
	ErrorMessage          *string        `gorm:"type:text" json:"error_message"`
}
