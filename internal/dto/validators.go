package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// RegisterCustomValidators installs the domain-aware binding tags used by the
// request types in this package. Must be called once before the router
// starts binding requests.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("claimfield", validClaimField); err != nil {
		return err
	}
	return v.RegisterValidation("claimrole", validClaimRole)
}

// validClaimField accepts only ledger-tracked field names.
func validClaimField(fl validator.FieldLevel) bool {
	return domain.FieldName(fl.Field().String()).IsValid()
}

// validClaimRole accepts only known workflow roles.
func validClaimRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).IsValid()
}
