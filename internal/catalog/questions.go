// Package catalog holds the built-in question bank and playstyle profiles.
package catalog

import "playstyle-quiz-service/internal/domain"

// DefaultBankID identifies the built-in question bank.
const DefaultBankID = "playstyle-v1"

func opt(id, text, desc string, scores ...domain.Contribution) domain.Option {
	return domain.Option{ID: id, Text: text, Description: desc, Contributions: scores}
}

func w(d domain.Dimension, v int) domain.Contribution {
	return domain.Contribution{Dimension: d, Value: v}
}

// Questions returns a fresh copy of the built-in question bank.
func Questions() []domain.Question {
	return []domain.Question{
		{
			ID:          "q1",
			Prompt:      "What is the first thing you do when starting a new game?",
			Description: "How you approach a game",
			Category:    domain.CategoryGameplayStyle,
			Options: []domain.Option{
				opt("q1_a", "Follow the tutorial carefully and learn the basics", "Prefers structured learning", w("S", 2), w("J", 1)),
				opt("q1_b", "Skip it and jump straight in", "Prefers intuitive learning", w("N", 2), w("P", 1)),
				opt("q1_c", "Look up guides and walkthroughs first", "Gathers information first", w("T", 1), w("J", 2)),
				opt("q1_d", "Watch how other players play", "Prefers social learning", w("E", 1), w("F", 1)),
			},
		},
		{
			ID:       "q2",
			Prompt:   "Which role do you prefer in team games?",
			Category: domain.CategoryTeamPlay,
			Options: []domain.Option{
				opt("q2_a", "The leader who drives the team", "", w("E", 2), w("J", 1)),
				opt("q2_b", "The commander who plans the strategy", "", w("T", 2), w("N", 1)),
				opt("q2_c", "The supporter who backs up teammates", "", w("F", 2), w("S", 1)),
				opt("q2_d", "The solo player who does fine alone", "", w("I", 2), w("P", 1)),
			},
		},
		{
			ID:       "q3",
			Prompt:   "How do you deal with a tough boss?",
			Category: domain.CategoryProblemSolving,
			Options: []domain.Option{
				opt("q3_a", "Study its patterns and plan a strategy", "", w("T", 2), w("J", 1)),
				opt("q3_b", "Keep trying until you get a feel for it", "", w("S", 1), w("P", 2)),
				opt("q3_c", "Check how other players beat it", "", w("E", 1), w("S", 1)),
				opt("q3_d", "Find a creative way around it", "", w("N", 2), w("P", 1)),
			},
		},
		{
			ID:       "q4",
			Prompt:   "Which genre do you enjoy the most?",
			Category: domain.CategoryGamePreference,
			Options: []domain.Option{
				opt("q4_a", "Story-rich RPGs", "", w("N", 2), w("F", 1)),
				opt("q4_b", "RTS or turn-based strategy", "", w("T", 2), w("J", 1)),
				opt("q4_c", "Real-time action and FPS", "", w("S", 2), w("P", 1)),
				opt("q4_d", "Multiplayer with friends", "", w("E", 2), w("F", 1)),
			},
		},
		{
			ID:       "q5",
			Prompt:   "How do you react when you fail?",
			Category: domain.CategoryProblemSolving,
			Options: []domain.Option{
				opt("q5_a", "Work out step by step what went wrong", "", w("T", 2), w("J", 1)),
				opt("q5_b", "Try again right away", "", w("S", 1), w("P", 2)),
				opt("q5_c", "Find a fix together with the team", "", w("E", 2), w("F", 1)),
				opt("q5_d", "Take a break and think of another way", "", w("I", 1), w("N", 2)),
			},
		},
		{
			ID:       "q6",
			Prompt:   "What matters most to you in a game?",
			Category: domain.CategoryAchievement,
			Options: []domain.Option{
				opt("q6_a", "High rank and a sense of achievement", "", w("T", 2), w("J", 1)),
				opt("q6_b", "A good time with friends", "", w("F", 2), w("E", 1)),
				opt("q6_c", "New experiences and discoveries", "", w("N", 2), w("P", 1)),
				opt("q6_d", "Flawless play and improving your skill", "", w("S", 2), w("J", 1)),
			},
		},
		{
			ID:       "q7",
			Prompt:   "A new update or patch is out. What do you do?",
			Category: domain.CategoryGameplayStyle,
			Options: []domain.Option{
				opt("q7_a", "Read the patch notes thoroughly", "", w("S", 2), w("J", 1)),
				opt("q7_b", "Jump in and feel the changes", "", w("S", 1), w("P", 2)),
				opt("q7_c", "See how the community reacts first", "", w("E", 2), w("F", 1)),
				opt("q7_d", "Think about what new strategies it opens up", "", w("N", 2), w("T", 1)),
			},
		},
		{
			ID:       "q8",
			Prompt:   "A disagreement breaks out in game. What do you do?",
			Category: domain.CategorySocialInteraction,
			Options: []domain.Option{
				opt("q8_a", "Persuade with logic", "", w("T", 2), w("E", 1)),
				opt("q8_b", "Give way for the sake of the team", "", w("F", 2), w("S", 1)),
				opt("q8_c", "Suggest a new alternative", "", w("N", 2), w("P", 1)),
				opt("q8_d", "Quietly do it your own way", "", w("I", 2), w("J", 1)),
			},
		},
	}
}

// DefaultBank wraps Questions under DefaultBankID.
func DefaultBank() domain.Bank {
	return domain.Bank{ID: DefaultBankID, Questions: Questions()}
}
