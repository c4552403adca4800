package catalog

import "playstyle-quiz-service/internal/domain"

var profiles = map[domain.Type]domain.PlaystyleProfile{
	"INTJ": {
		MBTIType:              "INTJ",
		Title:                 "Master Strategist",
		Description:           "Dominates through long-term planning and airtight strategy. Learns the whole system and builds the optimal setup.",
		Strengths:             []string{"Strategic, long-range thinking", "Optimizing systems", "Independent play", "Meta analysis and theorycrafting"},
		Weaknesses:            []string{"Struggles with improvisation", "Prefers solo play over teamwork", "Bored by repetitive grinding", "Avoids emotional calls"},
		RecommendedGames:      []string{"Civilization VI", "Chess.com", "Europa Universalis IV", "XCOM 2", "Factorio"},
		RecommendedWeapons:    []string{"Sniper rifle", "Mage staff", "Bow", "Tactical gear"},
		RecommendedStrategies: []string{"Map control and scouting", "Long-term resource management", "Find the weak spot, then focus it", "Wait for the perfect timing"},
		CompatibleTypes:       []domain.Type{"ENTP", "ENFP", "INTP", "INFP"},
		Tips:                  []string{"Ship the plan before it is perfect", "Share your strategy with the team", "Adapt to new metas", "Try an improvised game now and then"},
	},
	"INTP": {
		MBTIType:              "INTP",
		Title:                 "Theory Gamer",
		Description:           "Digs into how the game works and invents creative, unconventional ways to play it.",
		Strengths:             []string{"Deep understanding of game systems", "Creative, novel approaches", "Logical problem solving", "Original strategies"},
		Weaknesses:            []string{"Weak follow-through", "Avoids routine repetition", "Passive in team play", "Avoids conflict"},
		RecommendedGames:      []string{"Kerbal Space Program", "Dwarf Fortress", "The Witness", "Portal 2", "Cities: Skylines"},
		RecommendedWeapons:    []string{"Experimental weapons", "Engineering tools", "Modular weapons"},
		RecommendedStrategies: []string{"Experiment with new combinations", "Find exploitable system quirks", "Model the numbers before committing"},
		CompatibleTypes:       []domain.Type{"ENTJ", "ENFJ", "INTJ", "INFJ"},
		Tips:                  []string{"Put theories into practice sooner", "Explain your ideas to teammates", "Set small concrete goals"},
	},
	"ENTJ": {
		MBTIType:              "ENTJ",
		Title:                 "Commanding Leader",
		Description:           "A born leader who organizes the whole team and directs every move toward the win.",
		Strengths:             []string{"Leadership and shotcalling", "Strategy with execution", "Goal-driven play", "Organizing the team"},
		Weaknesses:            []string{"Can be overbearing", "Impatient with slower players", "Takes losses hard"},
		RecommendedGames:      []string{"League of Legends", "StarCraft II", "Age of Empires", "Total War", "Overwatch"},
		RecommendedWeapons:    []string{"Assault rifle", "Commander kit", "Heavy armor"},
		RecommendedStrategies: []string{"Take objectives early", "Assign clear roles", "Snowball leads aggressively"},
		CompatibleTypes:       []domain.Type{"INTP", "INFP", "ENTP", "ENFP"},
		Tips:                  []string{"Listen before you call", "Praise good plays", "Keep calm after a loss"},
	},
	"ENTP": {
		MBTIType:              "ENTP",
		Title:                 "Innovator",
		Description:           "Explores every possibility and surprises opponents with inventive plays.",
		Strengths:             []string{"Creative, unexpected plays", "Fast adaptation", "Tries many strategies", "Lifts the team mood"},
		Weaknesses:            []string{"Loses interest quickly", "Skips the fundamentals", "Takes unnecessary risks"},
		RecommendedGames:      []string{"Among Us", "Fall Guys", "Rocket League", "Sandbox games", "Experimental indies"},
		RecommendedWeapons:    []string{"Gadgets and traps", "Hybrid weapons", "Unusual loadouts"},
		RecommendedStrategies: []string{"Bait and switch", "Off-meta picks", "Change tactics mid-match"},
		CompatibleTypes:       []domain.Type{"INTJ", "INFJ", "ENTJ", "ENFJ"},
		Tips:                  []string{"Drill the basics too", "Finish what you start", "Pick your risky moments"},
	},
	"INFJ": {
		MBTIType:              "INFJ",
		Title:                 "Strategic Guardian",
		Description:           "Values team harmony while steering the game with deep, careful strategy.",
		Strengths:             []string{"Team harmony and cooperation", "Long-term planning", "Reading opponent patterns", "Emotional support"},
		Weaknesses:            []string{"Takes toxicity personally", "Overthinks decisions", "Burns out from carrying the mood"},
		RecommendedGames:      []string{"Journey", "Animal Crossing", "Stardew Valley", "Fire Emblem", "Co-op puzzle games"},
		RecommendedWeapons:    []string{"Support staff", "Shields", "Healing tools"},
		RecommendedStrategies: []string{"Anticipate enemy plans", "Protect key teammates", "Play for the long game"},
		CompatibleTypes:       []domain.Type{"ENTP", "ENFP", "INTP", "INFP"},
		Tips:                  []string{"Mute when you need to", "Trust your reads", "Rest between sessions"},
	},
	"INFP": {
		MBTIType:              "INFP",
		Title:                 "Idealist Adventurer",
		Description:           "Follows their own values and style, looking for meaning and fun inside the game world.",
		Strengths:             []string{"Distinct personal style", "Deep story immersion", "Creative problem solving", "Plays by their values"},
		Weaknesses:            []string{"Dislikes competitive pressure", "Loses focus in grinds", "Avoids confrontation"},
		RecommendedGames:      []string{"Minecraft", "The Elder Scrolls", "Ori and the Blind Forest", "Celeste", "Story-driven RPGs"},
		RecommendedWeapons:    []string{"Magic", "Bow", "Companion pets"},
		RecommendedStrategies: []string{"Explore every corner", "Build a character you care about", "Play at your own pace"},
		CompatibleTypes:       []domain.Type{"ENTJ", "ENFJ", "INTJ", "INFJ"},
		Tips:                  []string{"Try a light competitive mode", "Share your creations", "Set a session goal"},
	},
	"ENFJ": {
		MBTIType:              "ENFJ",
		Title:                 "Charismatic Mentor",
		Description:           "Leads and encourages teammates, building a game space everyone enjoys.",
		Strengths:             []string{"Team leadership", "Motivating teammates", "Communication and cooperation", "Setting the mood"},
		Weaknesses:            []string{"Neglects own performance", "Hurt by team conflict", "Over-commits to others"},
		RecommendedGames:      []string{"World of Warcraft", "Destiny 2", "Left 4 Dead 2", "Guild Wars 2", "Co-op games"},
		RecommendedWeapons:    []string{"Buff banners", "Support rifles", "Healing kits"},
		RecommendedStrategies: []string{"Coordinate raid roles", "Coach newer players", "Keep comms positive"},
		CompatibleTypes:       []domain.Type{"INTP", "INFP", "ENTP", "ENFP"},
		Tips:                  []string{"Practice your own mechanics", "Let others lead sometimes", "Step away from toxic lobbies"},
	},
	"ENFP": {
		MBTIType:              "ENFP",
		Title:                 "Passionate Explorer",
		Description:           "A free spirit with endless energy who explores every possibility a game offers.",
		Strengths:             []string{"Endless enthusiasm", "Creative play", "Energizes the team", "Fearless experimentation"},
		Weaknesses:            []string{"Hard to stick with one game", "Skips planning", "Easily distracted"},
		RecommendedGames:      []string{"No Man's Sky", "Terraria", "Party games", "Social VR", "Open-world games"},
		RecommendedWeapons:    []string{"Grappling hook", "Explosives", "Anything new"},
		RecommendedStrategies: []string{"Explore off the main path", "Recruit friends into plans", "Improvise combos"},
		CompatibleTypes:       []domain.Type{"INTJ", "INFJ", "ENTJ", "ENFJ"},
		Tips:                  []string{"Finish one long campaign", "Write down plans", "Pair with a planner"},
	},
	"ISTJ": {
		MBTIType:              "ISTJ",
		Title:                 "Reliable Defender",
		Description:           "Systematic and steady, the dependable backbone of any team.",
		Strengths:             []string{"Systematic, planned play", "Consistent results", "Sticks to the plan", "Steady improvement"},
		Weaknesses:            []string{"Slow to adopt new metas", "Rigid under chaos", "Reluctant to improvise"},
		RecommendedGames:      []string{"Chess", "Europa Universalis", "Strategy RPGs", "SimCity", "Management sims"},
		RecommendedWeapons:    []string{"Shield and sword", "Marksman rifle", "Fortifications"},
		RecommendedStrategies: []string{"Hold key positions", "Follow a build order", "Track resources closely"},
		CompatibleTypes:       []domain.Type{"ESFP", "ESTP", "ENFP", "ENTP"},
		Tips:                  []string{"Experiment in unranked", "Trust teammates' calls", "Adjust plans mid-game"},
	},
	"ISFJ": {
		MBTIType:              "ISFJ",
		Title:                 "Devoted Protector",
		Description:           "Looks after teammates with care and keeps the game space warm and harmonious.",
		Strengths:             []string{"Caring support", "Attentive observation", "Stable play", "Cooperative attitude"},
		Weaknesses:            []string{"Undervalues own plays", "Avoids leading", "Absorbs team stress"},
		RecommendedGames:      []string{"Overwatch (healer)", "Final Fantasy XIV", "Co-op puzzle games", "Animal Crossing"},
		RecommendedWeapons:    []string{"Healing staff", "Barrier tools", "Utility grenades"},
		RecommendedStrategies: []string{"Keep the team alive", "Watch cooldowns", "Play around your carry"},
		CompatibleTypes:       []domain.Type{"ESTP", "ESFP", "ENTP", "ENFP"},
		Tips:                  []string{"Speak up with your reads", "Take credit for saves", "Try a carry role once"},
	},
	"ESTJ": {
		MBTIType:              "ESTJ",
		Title:                 "Executive Commander",
		Description:           "Leads the team to victory with efficient strategy and strong execution.",
		Strengths:             []string{"Strong leadership", "Efficient team management", "Goal-driven play", "Drive and execution"},
		Weaknesses:            []string{"Can be blunt", "Dislikes unconventional plans", "Pushes too hard"},
		RecommendedGames:      []string{"StarCraft II", "Command & Conquer", "Rainbow Six Siege", "Age of Empires", "Tactical FPS"},
		RecommendedWeapons:    []string{"Assault rifle", "Breaching tools", "Command abilities"},
		RecommendedStrategies: []string{"Execute set plays", "Drill team timings", "Punish enemy mistakes fast"},
		CompatibleTypes:       []domain.Type{"ISFP", "INFP", "ISTP", "INTP"},
		Tips:                  []string{"Leave room for creativity", "Soften feedback", "Review wins as well as losses"},
	},
	"ESFJ": {
		MBTIType:              "ESFJ",
		Title:                 "Harmony Builder",
		Description:           "Owns the team's mood and chemistry so everyone can play at their best.",
		Strengths:             []string{"Excellent teamwork", "Builds atmosphere", "Motivates teammates", "Communication"},
		Weaknesses:            []string{"Avoids hard calls", "Sensitive to criticism", "Neglects own skill"},
		RecommendedGames:      []string{"Among Us", "Fall Guys", "Party games", "Co-op adventures", "Social games"},
		RecommendedWeapons:    []string{"Support kit", "Revive tools", "Team buffs"},
		RecommendedStrategies: []string{"Group up", "Call out positive info", "Keep everyone engaged"},
		CompatibleTypes:       []domain.Type{"ISTP", "ISFP", "INTP", "INFP"},
		Tips:                  []string{"Make the tough call when needed", "Practice solo too", "Don't carry every mood"},
	},
	"ISTP": {
		MBTIType:              "ISTP",
		Title:                 "Cool-Headed Troubleshooter",
		Description:           "Breaks through any situation with split-second judgment and sharp adaptability.",
		Strengths:             []string{"Split-second judgment", "High adaptability", "Practical problem solving", "Stays calm"},
		Weaknesses:            []string{"Quiet on comms", "Dislikes long plans", "Goes lone wolf"},
		RecommendedGames:      []string{"Counter-Strike", "Dark Souls", "Sekiro", "Action RPGs", "Real-time strategy"},
		RecommendedWeapons:    []string{"Knife", "Pistol", "Precision tools"},
		RecommendedStrategies: []string{"Clutch situations", "Flank and isolate", "Adapt on the fly"},
		CompatibleTypes:       []domain.Type{"ESFJ", "ENFJ", "ESTJ", "ENTJ"},
		Tips:                  []string{"Share info with the team", "Plan one step ahead", "Join a squad now and then"},
	},
	"ISFP": {
		MBTIType:              "ISFP",
		Title:                 "Free-Spirited Artist",
		Description:           "Turns games into art with a unique style and strong sensibility.",
		Strengths:             []string{"Unique playstyle", "Emotional immersion", "Flexible adaptation", "Plays by personal values"},
		Weaknesses:            []string{"Avoids competition", "Dislikes strict plans", "Drifts from objectives"},
		RecommendedGames:      []string{"Journey", "Gris", "Stardew Valley", "Minecraft", "Art-driven indies"},
		RecommendedWeapons:    []string{"Bow", "Dual blades", "Stylish cosmetics"},
		RecommendedStrategies: []string{"Play to your strengths", "Find flow in movement", "Choose builds you enjoy"},
		CompatibleTypes:       []domain.Type{"ESTJ", "ESFJ", "ENTJ", "ENFJ"},
		Tips:                  []string{"Try a structured goal", "Share your style", "Play with a trusted group"},
	},
	"ESTP": {
		MBTIType:              "ESTP",
		Title:                 "Action Hero",
		Description:           "Thrives in the thick of the fight with bold, instinctive plays.",
		Strengths:             []string{"Fast reactions", "Bold aggression", "Reads fights in real time", "Clutch mentality"},
		Weaknesses:            []string{"Ignores long-term plans", "Overextends", "Tilts after losses"},
		RecommendedGames:      []string{"Apex Legends", "Valorant", "Call of Duty", "Fighting games", "Battle royales"},
		RecommendedWeapons:    []string{"Shotgun", "SMG", "Melee"},
		RecommendedStrategies: []string{"Hot drop", "Entry frag", "Push while the enemy reloads"},
		CompatibleTypes:       []domain.Type{"ISFJ", "INFJ", "ISTJ", "INTJ"},
		Tips:                  []string{"Check the minimap", "Wait for your team once", "Review your deaths"},
	},
	"ESFP": {
		MBTIType:              "ESFP",
		Title:                 "Fun Evangelist",
		Description:           "Brings the party, turning every match into a good time for everyone.",
		Strengths:             []string{"Infectious energy", "Great in social play", "Adapts in the moment", "Keeps spirits high"},
		Weaknesses:            []string{"Loses focus in long matches", "Skips strategy talk", "Plays for laughs over wins"},
		RecommendedGames:      []string{"Mario Kart", "Overcooked", "Fortnite", "Rhythm games", "Party games"},
		RecommendedWeapons:    []string{"Flashy abilities", "Explosives", "Fun gadgets"},
		RecommendedStrategies: []string{"Keep the team talking", "Make highlight plays", "Play with friends"},
		CompatibleTypes:       []domain.Type{"ISTJ", "ISFJ", "INTJ", "INFJ"},
		Tips:                  []string{"Learn one strategy deeply", "Stay on objective", "Balance fun and focus"},
	},
}

// Profile returns the playstyle profile for t.
func Profile(t domain.Type) (domain.PlaystyleProfile, error) {
	p, ok := profiles[t]
	if !ok {
		return domain.PlaystyleProfile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

// Profiles returns every profile in canonical type order.
func Profiles() []domain.PlaystyleProfile {
	out := make([]domain.PlaystyleProfile, 0, len(domain.Types))
	for _, t := range domain.Types {
		if p, ok := profiles[t]; ok {
			out = append(out, p)
		}
	}
	return out
}
