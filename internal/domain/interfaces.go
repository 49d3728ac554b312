package domain

import "context"

// Prober queries the external provider for the currently playing media.
// Implementations never return an error; every failure mode is expressed
// as a typed field on ProbeResult.
type Prober interface {
	Probe(ctx context.Context) ProbeResult
}

// Store is the durable string-keyed, string-valued storage shared by the
// eligibility cache and the display reconciler. Each Get and Set is a
// single atomic operation; there are no multi-step transactions.
type Store interface {
	// Get returns the value for key and whether the key was present.
	Get(key string) (string, bool, error)

	// Set writes the value for key, overwriting any previous value.
	Set(key, value string) error
}
