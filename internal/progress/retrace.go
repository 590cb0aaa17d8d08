package progress

import "github.com/tatianab/memory-dive/internal/models"

// ReasonStabilityCritical is returned when a retrace is attempted with no
// stability left.
const ReasonStabilityCritical = "STABILITY_CRITICAL"

// RetraceResult reports the outcome of a retrace.
type RetraceResult struct {
	Success  bool     `yaml:"success"`
	Reason   string   `yaml:"reason,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// Retrace lists the keywords revealed by unlocked nodes that have not been
// collected yet, and spends RetraceCost stability. With no stability left it
// fails and returns s untouched.
func Retrace(s models.GameState, revealed func(nodeID string) []string) (models.GameState, RetraceResult) {
	if s.SystemStability <= 0 {
		return s, RetraceResult{Reason: ReasonStabilityCritical}
	}

	have := s.Collected()
	seen := make(map[string]bool)
	var keywords []string
	for _, id := range s.UnlockedNodeIDs {
		for _, kw := range revealed(id) {
			if have[kw] || seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	out := s.Clone()
	out.SystemStability = max(out.SystemStability-models.RetraceCost, 0)
	return out, RetraceResult{Success: true, Keywords: keywords}
}
