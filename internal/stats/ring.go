package stats

// ring is a bounded sliding window of float64 samples. Once full, each
// push overwrites the oldest sample.
type ring struct {
	samples []float64
	next    int
	full    bool
}

func newRing(capacity int) *ring {
	return &ring{samples: make([]float64, 0, capacity)}
}

// Push adds a sample, evicting the oldest once the window is full.
func (r *ring) Push(v float64) {
	if r.full {
		r.samples[r.next] = v
		r.next = (r.next + 1) % cap(r.samples)
		return
	}

	r.samples = append(r.samples, v)
	if len(r.samples) == cap(r.samples) {
		r.full = true
	}
}

// Len returns the current number of samples.
func (r *ring) Len() int {
	return len(r.samples)
}

// Mean returns the arithmetic mean of the window, 0 when empty.
func (r *ring) Mean() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range r.samples {
		sum += v
	}
	return sum / float64(len(r.samples))
}
