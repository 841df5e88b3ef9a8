package services

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"

	"wardrobeapi/models"
)

type UsageRecorder interface {
	RecordUsage(ctx context.Context, usage *models.LLMUsage)
}

// GormUsageRecorder writes one LLMUsage row per collaborator call.
type GormUsageRecorder struct {
	DB *gorm.DB
}

func (r *GormUsageRecorder) RecordUsage(ctx context.Context, usage *models.LLMUsage) {
	// the request context may already be cancelled, the ledger row is still wanted
	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := r.DB.WithContext(dbCtx).Create(usage).Error; err != nil {
		log.Printf("[Usage] Failed to save %s usage: %v", usage.Operation, err)
		sentry.CaptureException(err)
	}
}

type NoopUsageRecorder struct{}

func (NoopUsageRecorder) RecordUsage(context.Context, *models.LLMUsage) {}

func newUsage(operation models.LLMOperation, llm *LLMResponse, started time.Time, err error) *models.LLMUsage {
	usage := &models.LLMUsage{
		Operation: operation,
		Status:    "completed",
		Duration:  time.Since(started).Seconds(),
	}
	if llm != nil {
		usage.Provider = llm.Provider
		usage.LLMModel = llm.Model
		usage.LLMInputTokenCount = llm.InputTokenCount
		usage.LLMOutputTokenCount = llm.OutputTokenCount
		usage.LLMTotalTokenCount = llm.TotalTokenCount
		usage.LLMThoughtsTokenCount = llm.ThoughtsTokenCount
	}
	if err != nil {
		usage.Status = "failed"
		usage.ErrorMessage = StrPointer(err.Error())
	}
	return usage
}
