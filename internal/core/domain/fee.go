package domain

// FeeLedger holds the arbitration fee rate and the per-asset accumulators of
// collected fees. It is pure accounting, issuing the transfer of a withdrawn
// amount is up to the caller.
type FeeLedger struct {
	PercentFee      uint32
	AccumulatedFees map[string]uint64
}

// NewFeeLedger returns a ledger with empty accumulators and the given
// initial fee rate.
func NewFeeLedger(percentFee uint32) (*FeeLedger, error) {
	if percentFee > MaxPercentFee {
		return nil, ErrFeeTooHigh
	}

	return &FeeLedger{
		PercentFee:      percentFee,
		AccumulatedFees: map[string]uint64{},
	}, nil
}

// UpdatePercentFee replaces the fee rate, keeping it within [0, 10].
func (l *FeeLedger) UpdatePercentFee(percentFee uint32) error {
	if percentFee > MaxPercentFee {
		return ErrFeeTooHigh
	}

	l.PercentFee = percentFee
	return nil
}

// Accrue adds the given fee amount to the accumulator of the asset.
func (l *FeeLedger) Accrue(asset string, feeAmount uint64) {
	if l.AccumulatedFees == nil {
		l.AccumulatedFees = map[string]uint64{}
	}
	l.AccumulatedFees[asset] += feeAmount
}

// Withdraw resets the accumulator of the asset and returns the amount it
// held for the caller to transfer out.
func (l *FeeLedger) Withdraw(asset string) (uint64, error) {
	feeAmount := l.AccumulatedFees[asset]
	if feeAmount <= 0 {
		return 0, ErrNoArbitrationFees
	}

	l.AccumulatedFees[asset] = 0
	return feeAmount, nil
}

// Balance returns the accumulated fee amount for the asset.
func (l *FeeLedger) Balance(asset string) uint64 {
	return l.AccumulatedFees[asset]
}
