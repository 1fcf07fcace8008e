package testutil

// FixedTokenGenerator generates the same trace token every time.
//
// CLI output carries a trace id per run. Tests swap in this generator so
// JSON output is byte-identical between runs.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a new fixed token generator.
//
// If token is empty, Generate() returns "test-trace-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-trace-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
