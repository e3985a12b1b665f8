package dto

import (
	"time"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// NotificationResponse defines the data returned for one notification event.
type NotificationResponse struct {
	EventID      string    `json:"eventID"`
	TargetUserID string    `json:"targetUserID"`
	Type         string    `json:"type"`
	Priority     string    `json:"priority"`
	Message      string    `json:"message"`
	ActionRef    string    `json:"actionRef"`
	ClaimID      string    `json:"claimID"`
	Stage        string    `json:"stage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain event to the response DTO.
func ToNotificationResponse(e *domain.NotificationEvent) NotificationResponse {
	return NotificationResponse{
		EventID:      e.EventID,
		TargetUserID: e.TargetUserID,
		Type:         string(e.Type),
		Priority:     string(e.Priority),
		Message:      e.Message,
		ActionRef:    e.ActionRef,
		ClaimID:      e.ClaimID,
		Stage:        string(e.Stage),
		CreatedAt:    e.CreatedAt,
	}
}

// ToListNotificationResponse converts a slice of domain events to DTOs.
func ToListNotificationResponse(events []domain.NotificationEvent) []NotificationResponse {
	res := make([]NotificationResponse, len(events))
	for i, e := range events {
		res[i] = ToNotificationResponse(&e)
	}
	return res
}
