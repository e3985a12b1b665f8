package dto

import (
	"time"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// CreateSkipRuleRequest defines the data needed to create a skip rule.
// Exactly one of Designations/Emails/ProjectCodes must be non-empty,
// matching MatchType, and at least one skip flag must be true; the service
// enforces both invariants.
type CreateSkipRuleRequest struct {
	Name           string   `json:"name" binding:"required"`
	IsActive       bool     `json:"isActive"`
	Priority       int      `json:"priority" binding:"gte=0"`
	MatchType      string   `json:"matchType" binding:"required,oneof=designation email project"`
	Designations   []string `json:"designations"`
	Emails         []string `json:"emails" binding:"omitempty,dive,email"`
	ProjectCodes   []string `json:"projectCodes"`
	MaxAmountMinor *int64   `json:"maxAmountMinor" binding:"omitempty,gte=0"`
	CategoryCodes  []string `json:"categoryCodes"`
	SkipManager    bool     `json:"skipManager"`
	SkipHR         bool     `json:"skipHR"`
	SkipFinance    bool     `json:"skipFinance"`
}

// UpdateSkipRuleRequest defines edits to an existing rule. Nil pointers
// leave the corresponding attribute untouched; match lists replace wholesale.
type UpdateSkipRuleRequest struct {
	Name           *string  `json:"name"`
	IsActive       *bool    `json:"isActive"`
	Priority       *int     `json:"priority" binding:"omitempty,gte=0"`
	Designations   []string `json:"designations"`
	Emails         []string `json:"emails" binding:"omitempty,dive,email"`
	ProjectCodes   []string `json:"projectCodes"`
	MaxAmountMinor *int64   `json:"maxAmountMinor" binding:"omitempty,gte=0"`
	CategoryCodes  []string `json:"categoryCodes"`
	SkipManager    *bool    `json:"skipManager"`
	SkipHR         *bool    `json:"skipHR"`
	SkipFinance    *bool    `json:"skipFinance"`
}

// SkipRuleResponse defines the data returned for a skip rule.
type SkipRuleResponse struct {
	RuleID         string    `json:"ruleID"`
	TenantID       string    `json:"tenantID"`
	Name           string    `json:"name"`
	IsActive       bool      `json:"isActive"`
	Priority       int       `json:"priority"`
	MatchType      string    `json:"matchType"`
	Designations   []string  `json:"designations,omitempty"`
	Emails         []string  `json:"emails,omitempty"`
	ProjectCodes   []string  `json:"projectCodes,omitempty"`
	MaxAmountMinor *int64    `json:"maxAmountMinor,omitempty"`
	CategoryCodes  []string  `json:"categoryCodes,omitempty"`
	SkipManager    bool      `json:"skipManager"`
	SkipHR         bool      `json:"skipHR"`
	SkipFinance    bool      `json:"skipFinance"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// RuleConflict describes one overlap found by the rule-authoring validation
// pass: two rules with the same priority matching the same value.
type RuleConflict struct {
	FirstRuleID  string `json:"firstRuleID"`
	SecondRuleID string `json:"secondRuleID"`
	Priority     int    `json:"priority"`
	MatchValue   string `json:"matchValue"`
}

// ToSkipRuleResponse converts a domain.SkipRule to a SkipRuleResponse DTO.
func ToSkipRuleResponse(r *domain.SkipRule) SkipRuleResponse {
	return SkipRuleResponse{
		RuleID:         r.RuleID,
		TenantID:       r.TenantID,
		Name:           r.Name,
		IsActive:       r.IsActive,
		Priority:       r.Priority,
		MatchType:      string(r.MatchType),
		Designations:   r.Designations,
		Emails:         r.Emails,
		ProjectCodes:   r.ProjectCodes,
		MaxAmountMinor: r.MaxAmountMinor,
		CategoryCodes:  r.CategoryCodes,
		SkipManager:    r.SkipManager,
		SkipHR:         r.SkipHR,
		SkipFinance:    r.SkipFinance,
		CreatedAt:      r.CreatedAt,
		LastUpdatedAt:  r.LastUpdatedAt,
	}
}

// ToListSkipRuleResponse converts a slice of domain rules to response DTOs.
func ToListSkipRuleResponse(rules []domain.SkipRule) []SkipRuleResponse {
	res := make([]SkipRuleResponse, len(rules))
	for i, r := range rules {
		res[i] = ToSkipRuleResponse(&r)
	}
	return res
}
