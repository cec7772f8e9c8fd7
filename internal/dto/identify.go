package dto

import "github.com/SscSPs/loot_ledger_app/internal/core/domain"

// IdentifyRequest is a single spellcraft roll. The DM's roll is ignored.
type IdentifyRequest struct {
	Roll int `json:"roll" binding:"gte=0,lte=200"`
}

// IdentifyAttempt is one roll in a batch.
type IdentifyAttempt struct {
	LootItemID int64 `json:"lootItemId" binding:"required,gt=0"`
	Roll       int   `json:"roll" binding:"gte=0,lte=200"`
}

// IdentifyBatchRequest resolves several rolls together.
type IdentifyBatchRequest struct {
	Attempts []IdentifyAttempt `json:"attempts" binding:"required,min=1,dive"`
}

// ToDomain converts the batch into domain requests.
func (r IdentifyBatchRequest) ToDomain() []domain.IdentifyRequest {
	reqs := make([]domain.IdentifyRequest, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		reqs = append(reqs, domain.IdentifyRequest{LootItemID: a.LootItemID, Roll: a.Roll})
	}
	return reqs
}
