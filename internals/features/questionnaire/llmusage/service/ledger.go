// file: internals/features/questionnaire/llmusage/service/ledger.go
package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "moobee_backend/internals/features/questionnaire/llmusage/model"
)

/* =========================================================
   Pricing — published per-model USD rates per 1K tokens
   ========================================================= */

type modelPrice struct {
	PromptPer1K     float64
	CompletionPer1K float64
}

var priceTable = map[string]modelPrice{
	"gemini-1.5-flash": {0.000075, 0.0003},
	"gemini-1.5-pro":   {0.00125, 0.005},
	"gemini-2.0-flash": {0.0001, 0.0004},
	"gpt-4o-mini":      {0.00015, 0.0006},
	"gpt-4o":           {0.0025, 0.01},
}

// EstimateCost prices a call from the published table. Unknown models
// cost zero and are flagged so the record is auditable.
func EstimateCost(modelName string, promptTokens, completionTokens int) (cost float64, unpriced bool) {
	p, ok := priceTable[modelName]
	if !ok {
		return 0, true
	}
	cost = float64(promptTokens)/1000*p.PromptPer1K + float64(completionTokens)/1000*p.CompletionPer1K
	return cost, false
}

/* =========================================================
   Ledger
   ========================================================= */

type Ledger struct {
	DB *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{DB: db}
}

type Call struct {
	TenantID         uuid.UUID
	UserID           uuid.UUID
	Operation        string
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Elapsed          time.Duration
	Status           string
	ErrorMessage     string
	EntityKind       string
	EntityID         *uuid.UUID
}

// Record writes exactly one ledger row for the call. The write is a
// contractual side effect: it happens before the controller returns, and
// a failed write is surfaced to the caller.
func (l *Ledger) Record(call Call) error {
	cost, unpriced := EstimateCost(call.Model, call.PromptTokens, call.CompletionTokens)
	if unpriced {
		log.Printf("[LEDGER] ⚠️ no price entry for model %q, recording zero cost", call.Model)
	}

	row := model.LLMUsageModel{
		UsageTenantID:         call.TenantID,
		UsageUserID:           call.UserID,
		UsageOperation:        call.Operation,
		UsageProvider:         call.Provider,
		UsageModel:            call.Model,
		UsagePromptTokens:     call.PromptTokens,
		UsageCompletionTokens: call.CompletionTokens,
		UsageTotalTokens:      call.PromptTokens + call.CompletionTokens,
		UsageEstimatedCost:    cost,
		UsageCostUnpriced:     unpriced,
		UsageElapsedMs:        call.Elapsed.Milliseconds(),
		UsageStatus:           call.Status,
	}
	if call.ErrorMessage != "" {
		row.UsageErrorMessage = &call.ErrorMessage
	}
	if call.EntityKind != "" {
		row.UsageEntityKind = &call.EntityKind
	}
	row.UsageEntityID = call.EntityID

	if err := l.DB.Create(&row).Error; err != nil {
		log.Printf("[LEDGER] ❌ usage record write failed: %v", err)
		return err
	}
	return nil
}
