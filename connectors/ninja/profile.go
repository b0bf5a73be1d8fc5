package ninja

import (
	"context"
	"math/rand"
)

// Profile is a resolved per-unit generation series. Synthetic marks profiles
// produced by the fallback path instead of real irradiance data; results
// computed from them must be reported as degraded.
type Profile struct {
	Values    []float64
	Synthetic bool
}

// FetchOrFallback resolves a generation profile of exactly steps values. When
// the API call fails (or no token is configured) it substitutes a uniform
// random placeholder so the optimization can still run in degraded mode.
func (c *Client) FetchOrFallback(ctx context.Context, cfg Config, steps int) Profile {
	if c.token != "" {
		series, err := c.FetchPV(ctx, cfg)
		if err == nil {
			return Profile{Values: resize(series, steps)}
		}
		c.log.Warnf("pv fetch failed, using synthetic profile: %v", err)
	} else {
		c.log.Warnf("no api token configured, using synthetic profile")
	}
	return Profile{Values: SyntheticProfile(steps), Synthetic: true}
}

// SyntheticProfile returns a uniform random placeholder series in [0,1).
func SyntheticProfile(steps int) []float64 {
	values := make([]float64, steps)
	for i := range values {
		values[i] = rand.Float64()
	}
	return values
}

// resize pads with zeros or truncates so the series matches the horizon.
func resize(s []float64, steps int) []float64 {
	if len(s) == steps {
		return s
	}
	out := make([]float64, steps)
	copy(out, s)
	return out
}
