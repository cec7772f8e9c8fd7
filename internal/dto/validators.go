package dto

import (
	"fmt"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain enum tags used in request bindings:
// loot_status and transaction_type.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("loot_status", func(fl validator.FieldLevel) bool {
		return domain.LootStatus(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("registering loot_status validator: %w", err)
	}
	if err := v.RegisterValidation("transaction_type", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTransactionType(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("registering transaction_type validator: %w", err)
	}
	return nil
}
