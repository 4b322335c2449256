// Package sortdrv implements the two-pivot quicksort driver and the
// Nelder-Mead pivot tuner that chooses each recursion's pivot pair.
//
// The two live in one Go package because they are mutually recursive: the
// driver asks the tuner for pivots, and the tuner evaluates a candidate
// pivot pair by cloning the state and running the driver's own split+
// recurse on the clone. Splitting them into separate packages would
// introduce an import cycle, so they share one module boundary instead.
package sortdrv

// Config bundles the Nelder-Mead pivot tuner's knobs.
type Config struct {
	// MaxDepth is the recursion depth at which pivot tuning is disabled in
	// favor of the deterministic (20th, 80th) percentile fallback.
	MaxDepth int
	// MaxIters bounds the Nelder-Mead iteration count. Default 50.
	MaxIters int
	// Tol is the L-infinity simplex-diameter convergence threshold.
	// Default 0.01.
	Tol float64
	// InitialScale is the initial simplex edge length in [0,1] space.
	// Default 0.55.
	InitialScale float64
	// FinalRadius is the index-space neighborhood radius scanned after NM
	// terminates. Default 2.
	FinalRadius int
}

// DefaultConfig returns the tuner's default knob values.
func DefaultConfig() Config {
	return Config{
		MaxDepth:     8,
		MaxIters:     50,
		Tol:          0.01,
		InitialScale: 0.55,
		FinalRadius:  2,
	}
}
