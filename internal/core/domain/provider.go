package domain

// ProviderState tracks whether a degradable capability (embedding or
// generation) is serving from its external provider or its local fallback.
// The transition to StateUsingFallback is one-directional: once a provider
// call fails, the process never retries the external path.
type ProviderState int

const (
	// StateUninitialized means the capability has not been constructed yet.
	StateUninitialized ProviderState = iota

	// StateUsingExternal means calls are served by the external provider.
	StateUsingExternal

	// StateUsingFallback means calls are served by the local fallback.
	StateUsingFallback
)

// String returns a human-readable state name.
func (s ProviderState) String() string {
	switch s {
	case StateUsingExternal:
		return "external"
	case StateUsingFallback:
		return "fallback"
	default:
		return "uninitialized"
	}
}
