package step

// Semantics selects how repetitions behave when a later step fails.
type Semantics uint8

const (
	// Greedy repetitions consume as many iterations as they can and never give
	// any back. A pattern such as a*a therefore never matches: the star eats
	// every 'a' and the trailing literal fails.
	Greedy Semantics = iota

	// Backtracking repetitions retry with fewer iterations, and alternations
	// retry later branches, until the rest of the pattern succeeds. This gives
	// the usual regular expression answers at the price of a worst case that is
	// exponential in the nesting of repetitions.
	Backtracking
)

// String returns the name of the semantics.
func (s Semantics) String() string {
	switch s {
	case Greedy:
		return "greedy"
	case Backtracking:
		return "backtracking"
	}
	return "unknown"
}

// Config controls compilation.
//
// Example:
//
//	config := step.DefaultConfig()
//	config.Semantics = step.Backtracking
//	prog, err := step.CompileWithConfig(`a*a`, config)
type Config struct {
	// Semantics selects greedy (default) or backtracking repetition.
	Semantics Semantics

	// EnablePrefilter lets unanchored searches skip ahead to positions where a
	// required prefix literal occurs.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits how many prefix literals are extracted for the
	// prefilter. Patterns needing more get no prefilter.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen truncates extracted prefix literals.
	// Default: 32
	MaxLiteralLen int

	// MaxClassSize is the largest character class expanded into literals.
	// Default: 10
	MaxClassSize int

	// MaxRecursionDepth limits nesting during compilation.
	// Default: 100
	MaxRecursionDepth int
}

// DefaultConfig returns the default configuration: greedy semantics with the
// prefilter enabled.
func DefaultConfig() Config {
	return Config{
		Semantics:         Greedy,
		EnablePrefilter:   true,
		MaxLiterals:       64,
		MaxLiteralLen:     32,
		MaxClassSize:      10,
		MaxRecursionDepth: 100,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Semantics: Greedy or Backtracking
//   - MaxLiterals: 1 to 1,000 (when the prefilter is enabled)
//   - MaxLiteralLen: 1 to 256 (when the prefilter is enabled)
//   - MaxClassSize: 1 to 256 (when the prefilter is enabled)
//   - MaxRecursionDepth: 10 to 1,000
func (c Config) Validate() error {
	if c.Semantics != Greedy && c.Semantics != Backtracking {
		return &ConfigError{
			Field:   "Semantics",
			Message: "must be Greedy or Backtracking",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 256 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 256",
			}
		}
		if c.MaxClassSize < 1 || c.MaxClassSize > 256 {
			return &ConfigError{
				Field:   "MaxClassSize",
				Message: "must be between 1 and 256",
			}
		}
	}

	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 1,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "stepregex: invalid config: " + e.Field + ": " + e.Message
}
