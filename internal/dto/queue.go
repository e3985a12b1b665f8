package dto

import "github.com/veloexp/claim_approval_app/internal/core/domain"

// PendingCountsResponse is the dashboard badge read model.
type PendingCountsResponse struct {
	Manager int `json:"manager"`
	HR      int `json:"hr"`
	Finance int `json:"finance"`
	Total   int `json:"total"`
}

// ToPendingCountsResponse converts domain pending counts to the response DTO.
func ToPendingCountsResponse(c domain.PendingCounts) PendingCountsResponse {
	return PendingCountsResponse{
		Manager: c.Manager,
		HR:      c.HR,
		Finance: c.Finance,
		Total:   c.Total,
	}
}
