package sim

// Sizer decides how much cash a buy commits. Position sizing is a
// pluggable policy so the all-in default is not baked into the
// portfolio state machine.
type Sizer interface {
	// Spend returns the cash to commit given available cash and the
	// fill price. Implementations must return a value in [0, cash].
	Spend(cash, price float64) float64
}

// FullCash invests the entire balance on every buy. This is the spot
// default.
type FullCash struct{}

func (FullCash) Spend(cash, price float64) float64 { return cash }

// FixedFraction invests a constant fraction of the current balance.
type FixedFraction struct {
	Fraction float64 // (0,1]
}

func (s FixedFraction) Spend(cash, price float64) float64 {
	f := s.Fraction
	if f <= 0 {
		return 0
	}
	if f > 1 {
		f = 1
	}
	return cash * f
}

// FixedNotional invests a constant cash amount, capped at the balance.
type FixedNotional struct {
	Amount float64
}

func (s FixedNotional) Spend(cash, price float64) float64 {
	if s.Amount <= 0 {
		return 0
	}
	if s.Amount > cash {
		return cash
	}
	return s.Amount
}
