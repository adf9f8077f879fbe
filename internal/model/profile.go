package model

// Profile describes one investment path. TransactionFee is charged once on entry.
type Profile struct {
	Yield          float64 `json:"yield"`
	Commission     float64 `json:"commission"`
	TransactionFee float64 `json:"transaction_fee"`
}

// Growth returns the per-year multiplier: growth first, then commission.
func (p Profile) Growth() float64 {
	return (1 + p.Yield) * (1 - p.Commission)
}

// Action is the recommended decision.
type Action string

const (
	ActionMove Action = "MOVE"
	ActionStay Action = "STAY"
)

// Recommendation is the final output of the strategy package.
type Recommendation struct {
	Action     Action
	Message    string
	Advantage  float64 // new final value minus current final value
	WarningMsg string
}
