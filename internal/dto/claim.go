package dto

import (
	"time"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/utils"
)

// CreateClaimRequest defines the data needed to create a new claim in DRAFT.
// ManualFields lists the claim fields the employee keyed in by hand; every
// other tracked field is assumed to originate from the automated extraction.
type CreateClaimRequest struct {
	CurrencyCode   string   `json:"currencyCode" binding:"required,uppercase,len=3"`
	AmountMinor    int64    `json:"amountMinor" binding:"required,gte=0"`
	CategoryCode   string   `json:"categoryCode" binding:"required"`
	ProjectCode    string   `json:"projectCode"`
	Vendor         string   `json:"vendor" binding:"required"`
	Description    string   `json:"description"`
	TransactionRef string   `json:"transactionRef"`
	ManualFields   []string `json:"manualFields" binding:"omitempty,dive,claimfield"`
}

// UpdateClaimRequest defines employee edits to a claim still in DRAFT.
// Nil pointers leave the corresponding field untouched.
type UpdateClaimRequest struct {
	AmountMinor    *int64  `json:"amountMinor" binding:"omitempty,gte=0"`
	CategoryCode   *string `json:"categoryCode"`
	ProjectCode    *string `json:"projectCode"`
	Vendor         *string `json:"vendor"`
	Description    *string `json:"description"`
	TransactionRef *string `json:"transactionRef"`
}

// ClaimResponse defines the data returned for a claim.
type ClaimResponse struct {
	ClaimID         string     `json:"claimID"`
	ClaimNumber     string     `json:"claimNumber"`
	TenantID        string     `json:"tenantID"`
	EmployeeID      string     `json:"employeeID"`
	CurrencyCode    string     `json:"currencyCode"`
	AmountMinor     int64      `json:"amountMinor"`
	AmountDisplay   string     `json:"amountDisplay"` // Major units, e.g. "123.45"
	CategoryCode    string     `json:"categoryCode"`
	ProjectCode     string     `json:"projectCode,omitempty"`
	Vendor          string     `json:"vendor"`
	Description     string     `json:"description"`
	TransactionRef  string     `json:"transactionRef"`
	Stage           string     `json:"stage"`
	EffectiveStages []string   `json:"effectiveStages,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastUpdatedAt   time.Time  `json:"lastUpdatedAt"`
}

// ListClaimsResponse wraps a page of claims with the pagination token.
type ListClaimsResponse struct {
	Claims    []ClaimResponse `json:"claims"`
	NextToken string          `json:"nextToken,omitempty"`
}

// ToClaimResponse converts a domain.Claim to a ClaimResponse DTO.
func ToClaimResponse(c *domain.Claim) ClaimResponse {
	stages := make([]string, len(c.EffectiveStages))
	for i, s := range c.EffectiveStages {
		stages[i] = string(s)
	}
	return ClaimResponse{
		ClaimID:         c.ClaimID,
		ClaimNumber:     c.ClaimNumber,
		TenantID:        c.TenantID,
		EmployeeID:      c.EmployeeID,
		CurrencyCode:    c.CurrencyCode,
		AmountMinor:     c.AmountMinor,
		AmountDisplay:   utils.FormatMinorUnits(c.AmountMinor, c.CurrencyCode),
		CategoryCode:    c.CategoryCode,
		ProjectCode:     c.ProjectCode,
		Vendor:          c.Vendor,
		Description:     c.Description,
		TransactionRef:  c.TransactionRef,
		Stage:           string(c.Stage),
		EffectiveStages: stages,
		SubmittedAt:     c.SubmittedAt,
		CreatedAt:       c.CreatedAt,
		LastUpdatedAt:   c.LastUpdatedAt,
	}
}

// ToListClaimsResponse converts a page of domain claims to the list DTO.
func ToListClaimsResponse(claims []domain.Claim, nextToken string) ListClaimsResponse {
	res := make([]ClaimResponse, len(claims))
	for i, c := range claims {
		res[i] = ToClaimResponse(&c)
	}
	return ListClaimsResponse{Claims: res, NextToken: nextToken}
}
