// Package finance holds the economic primitives shared by the optimization
// components: the capital-recovery factor used to annualize CAPEX and a small
// project cash-flow analysis.
package finance

import "math"

// AnnuityFactor returns the capital-recovery factor converting a one-time
// cost into an equivalent uniform annual cost at discount rate r over n
// years: r(1+r)^n / ((1+r)^n - 1). A zero rate degenerates to 1/n.
func AnnuityFactor(r float64, n int) float64 {
	if n < 1 {
		return 0
	}
	if r == 0 {
		return 1 / float64(n)
	}
	pow := math.Pow(1+r, float64(n))
	return r * pow / (pow - 1)
}
