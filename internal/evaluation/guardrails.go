package evaluation

// GuardrailConfig bounds an evaluation run
type GuardrailConfig struct {
	MinVisits int // visits required before the holdout, at least 1
	MaxUsers  int // cap on evaluated users, 0 means no cap
}

// Guardrails decides which users a run may evaluate
type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MinVisits < 1 {
		config.MinVisits = 1
	}
	return &Guardrails{config: config}
}

// ShouldEvaluate reports whether a user with the given remaining history is
// worth a holdout trial
func (g *Guardrails) ShouldEvaluate(historyCount int) bool {
	return historyCount >= g.config.MinVisits
}

// LimitUsers truncates the candidate user list to the configured cap
func (g *Guardrails) LimitUsers(userIDs []int) []int {
	if g.config.MaxUsers > 0 && len(userIDs) > g.config.MaxUsers {
		return userIDs[:g.config.MaxUsers]
	}
	return userIDs
}
