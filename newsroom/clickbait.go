package newsroom

import (
	"math"
	"strings"
	"unicode"
)

// Lexical markers that tend to show up in sensationalized Polish and
// English headlines.
var clickbaitMarkers = []string{
	"szok", "nie uwierzysz", "tego nie wiedziałeś", "sekret",
	"zdradza", "musisz zobaczyć", "niewiarygodne", "hit",
	"sensacja", "pilne", "breaking", "exclusive",
}

// ClickbaitScore rates how sensationalized a title looks, in [0.0, 1.0].
// Deterministic heuristic: trigger-phrase hits, punctuation density and
// capitalization ratio, weighted and clamped at 1.0. The editor step
// consumes the score as context; it does not gate decisions by itself.
func ClickbaitScore(title string) float64 {
	lower := strings.ToLower(title)

	score := 0.0
	for _, marker := range clickbaitMarkers {
		if strings.Contains(lower, marker) {
			score++
		}
	}
	score += float64(strings.Count(title, "!")) * 0.5
	score += float64(strings.Count(title, "?")) * 0.25

	runes := []rune(title)
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	total := len(runes)
	if total == 0 {
		total = 1
	}
	if float64(upper)/float64(total) > 0.3 {
		score += 0.5
	}

	return math.Min(score*0.2, 1.0)
}
