package finance

import "math"

// Analysis summarizes a project with an upfront investment and uniform annual
// net cash flows over its lifetime.
type Analysis struct {
	NPV          float64
	IRR          float64 // NaN when no sign change exists
	PaybackYears float64 // +Inf when the project never pays back
}

// Analyze evaluates capex against annualCashFlow received for years at the
// given discount rate.
func Analyze(capex, annualCashFlow float64, years int, discountRate float64) Analysis {
	a := Analysis{
		NPV:          NPV(capex, annualCashFlow, years, discountRate),
		IRR:          IRR(capex, annualCashFlow, years),
		PaybackYears: math.Inf(1),
	}
	if annualCashFlow > 0 {
		a.PaybackYears = capex / annualCashFlow
	}
	return a
}

// NPV discounts uniform annual cash flows against the upfront capex.
func NPV(capex, annualCashFlow float64, years int, rate float64) float64 {
	npv := -capex
	for y := 1; y <= years; y++ {
		npv += annualCashFlow / math.Pow(1+rate, float64(y))
	}
	return npv
}

// IRR finds the rate at which NPV crosses zero by bisection. It returns NaN
// when the cash flows admit no internal rate in [0, 10].
func IRR(capex, annualCashFlow float64, years int) float64 {
	lo, hi := 0.0, 10.0
	fLo := NPV(capex, annualCashFlow, years, lo)
	if fLo*NPV(capex, annualCashFlow, years, hi) > 0 {
		return math.NaN()
	}
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(capex, annualCashFlow, years, mid)
		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	return (lo + hi) / 2
}
