package dto

import (
	"time"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// ClaimActor carries the identity facts of the user performing a workflow
// action. Designation and email are only consulted on submit (skip-rule
// matching); the service backfills them from the employee directory when the
// caller leaves them empty.
type ClaimActor struct {
	ActorID         string      `json:"actorID"`
	Role            domain.Role `json:"actorRole"`
	DesignationCode string      `json:"actorDesignation,omitempty"`
	Email           string      `json:"actorEmail,omitempty"`
}

// ApproveClaimRequest carries the optional approver comment.
type ApproveClaimRequest struct {
	Comment string `json:"comment"`
}

// RejectClaimRequest carries the rejection comment.
type RejectClaimRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// ReturnClaimRequest carries the mandatory return reason.
type ReturnClaimRequest struct {
	Reason string `json:"reason" binding:"required,min=5"`
}

// HREditClaimRequest carries field-level edits applied during the HR review
// window. Keys are tracked field names; values are the new field values
// (amount expects a number in minor units, everything else a string).
type HREditClaimRequest struct {
	FieldChanges map[string]any `json:"fieldChanges" binding:"required,min=1"`
}

// ApprovalHistoryEntryResponse defines the data returned for one history entry.
type ApprovalHistoryEntryResponse struct {
	EntryID   string    `json:"entryID"`
	ClaimID   string    `json:"claimID"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actorID"`
	ActorRole string    `json:"actorRole"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToApprovalHistoryResponse converts domain history entries to DTOs.
func ToApprovalHistoryResponse(entries []domain.ApprovalHistoryEntry) []ApprovalHistoryEntryResponse {
	res := make([]ApprovalHistoryEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ApprovalHistoryEntryResponse{
			EntryID:   e.EntryID,
			ClaimID:   e.ClaimID,
			Action:    string(e.Action),
			ActorID:   e.ActorID,
			ActorRole: string(e.ActorRole),
			Comment:   e.Comment,
			CreatedAt: e.CreatedAt,
		}
	}
	return res
}

// ProvenanceResponse maps each tracked field to its current source tag.
type ProvenanceResponse struct {
	ClaimID string            `json:"claimID"`
	Sources map[string]string `json:"sources"`
}

// ToProvenanceResponse converts a field -> source map to the response DTO.
func ToProvenanceResponse(claimID string, sources map[domain.FieldName]domain.FieldSource) ProvenanceResponse {
	out := make(map[string]string, len(sources))
	for f, s := range sources {
		out[string(f)] = string(s)
	}
	return ProvenanceResponse{ClaimID: claimID, Sources: out}
}
