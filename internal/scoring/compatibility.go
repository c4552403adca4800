package scoring

import "playstyle-quiz-service/internal/domain"

// axisBonus is awarded when two types differ on an axis.
var axisBonus = [4]int{15, 10, 15, 10}

// Compatibility rates two types from 0 to 100. Matching letters score 25
// each; differing letters score the axis bonus.
func Compatibility(a, b domain.Type) int {
	if a == b {
		return 100
	}
	score := 0
	for i := 0; i < len(domain.Axes) && i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			score += 25
			continue
		}
		score += axisBonus[i]
	}
	if score > 100 {
		score = 100
	}
	return score
}
