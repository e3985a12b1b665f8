package domain

// PendingCounts is a derived role -> count read model over the live claim
// set. It is recomputed on demand and never persisted as source of truth.
type PendingCounts struct {
	Manager int `json:"manager"`
	HR      int `json:"hr"`
	Finance int `json:"finance"`
	Total   int `json:"total"`
}
