package layout

// Composite is a metric computed from two other metrics.
type Composite interface {
	// Operands names the two metrics the composite reads, in order.
	Operands() (string, string)
	// Combine merges two present operand values.
	Combine(a, b float64) float64
}

// Ratio divides Num by Den. A zero denominator yields 0.
type Ratio struct {
	Num, Den string
}

func (r Ratio) Operands() (string, string) { return r.Num, r.Den }

func (r Ratio) Combine(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Sum adds A and B.
type Sum struct {
	A, B string
}

func (s Sum) Operands() (string, string) { return s.A, s.B }

func (s Sum) Combine(a, b float64) float64 { return a + b }
