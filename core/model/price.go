package model

// PeakOffpeakPrices derives a binary price series from a generation profile
// when no explicit price series is supplied. Steps where generation exceeds
// the profile mean are priced off-peak, the rest peak.
func PeakOffpeakPrices(profile []float64, peak, offpeak float64) []float64 {
	prices := make([]float64, len(profile))
	if len(profile) == 0 {
		return prices
	}
	var sum float64
	for _, v := range profile {
		sum += v
	}
	mean := sum / float64(len(profile))
	for i, v := range profile {
		if v > mean {
			prices[i] = offpeak
		} else {
			prices[i] = peak
		}
	}
	return prices
}

// TimeOfDayPrices derives a price series from the wall-clock hour of each
// step: off-peak between fromHour and toHour inclusive, peak otherwise.
func TimeOfDayPrices(ti TimeIndex, peak, offpeak float64, fromHour, toHour int) []float64 {
	prices := make([]float64, ti.Len())
	for i := range prices {
		h := ti.Time(i).Hour()
		if h >= fromHour && h <= toHour {
			prices[i] = offpeak
		} else {
			prices[i] = peak
		}
	}
	return prices
}
