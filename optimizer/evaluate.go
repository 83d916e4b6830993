package optimizer

// stepper advances a running set of virtue values by one ingredient's
// contribution. The search engine only ever moves through values this way.
type stepper interface {
	EvaluateIncremental(base Values, ingredient, delta int) Values
}

// Evaluate computes the virtue values of a full quantity vector.
// Entries beyond the catalog size are ignored.
func (c *Catalog) Evaluate(q Quantities) Values {
	var out Values
	n := len(q)
	if n > len(c.names) {
		n = len(c.names)
	}
	for _, vt := range Virtues {
		row := c.coeff[vt]
		sum := 0.0
		for i := 0; i < n; i++ {
			if q[i] != 0 {
				sum += float64(q[i]) * row[i]
			}
		}
		out[vt] = sum
	}
	return out
}

// EvaluateIncremental returns base advanced by delta units of ingredient.
// EvaluateIncremental(Evaluate(q), i, d) equals Evaluate(q with q[i]+=d)
// up to floating-point rounding.
func (c *Catalog) EvaluateIncremental(base Values, ingredient, delta int) Values {
	if delta == 0 {
		return base
	}
	d := float64(delta)
	return Values{
		base[Taste] + d*c.coeff[Taste][ingredient],
		base[Color] + d*c.coeff[Color][ingredient],
		base[Strength] + d*c.coeff[Strength][ingredient],
		base[Foam] + d*c.coeff[Foam][ingredient],
	}
}
