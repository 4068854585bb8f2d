package asymp

import "fmt"

// ConfigError reports an invalid ring, monoid or evaluator setup:
// malformed growth specifications, a dependent variable that is not a
// bare symbol, or missing bounds. These are raised eagerly at
// construction and never deferred.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string { return e.Reason }

func configErrorf(format string, args ...any) ConfigError {
	return ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// UnboundableError reports that no sound same-order bound can be
// derived for a summand, typically because it only carries a
// qualitative O guarantee.
type UnboundableError struct {
	Summand string
}

func (e UnboundableError) Error() string {
	return "no same-order bound can be constructed for " + e.Summand
}
