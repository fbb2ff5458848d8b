package domain

// ClaimOutcome is the aggregated result of racing one code across the
// account pool. ClaimedBy is empty unless Succeeded is true.
type ClaimOutcome struct {
	Succeeded bool
	Message   string
	ClaimedBy AccountID
}
