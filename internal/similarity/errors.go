package similarity

import "fmt"

// ScoreError reports a pair that cannot be scored.
type ScoreError struct {
	SkillAID string
	SkillBID string
	Message  string
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("score error for (%s, %s): %s", e.SkillAID, e.SkillBID, e.Message)
}
