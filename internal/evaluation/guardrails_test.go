package evaluation

import "testing"

func TestGuardrails_ShouldEvaluate(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MinVisits: 2})

	if g.ShouldEvaluate(1) {
		t.Error("expected a single-visit history to be rejected")
	}
	if !g.ShouldEvaluate(2) {
		t.Error("expected a two-visit history to pass")
	}
}

func TestGuardrails_DefaultMinVisits(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	if g.ShouldEvaluate(0) {
		t.Error("expected an empty history to be rejected")
	}
	if !g.ShouldEvaluate(1) {
		t.Error("expected a single-visit history to pass with defaults")
	}
}

func TestGuardrails_LimitUsers(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MaxUsers: 2})

	limited := g.LimitUsers([]int{7, 8, 9})
	if len(limited) != 2 || limited[0] != 7 || limited[1] != 8 {
		t.Errorf("expected [7 8], got %v", limited)
	}

	uncapped := NewGuardrails(GuardrailConfig{})
	if got := uncapped.LimitUsers([]int{7, 8, 9}); len(got) != 3 {
		t.Errorf("expected no cap, got %v", got)
	}
}
