package droid

// SynthesizeStatistics derives hit counts for replay versions that do not store them.
// isNewCombo(i) reports whether object i starts a new combo. A combo that ends with every
// judgement Great awards a hit300k; otherwise one with no Meh or Miss awards a hit100k.
// Both are counted on top of the plain 300/100 counts.
func SynthesizeStatistics(judgements []ObjectJudgement, isNewCombo func(i int) bool) Statistics {
	var stats Statistics

	allGreat := true
	flawless := true
	combo := 0

	for i, j := range judgements {
		switch j.Result {
		case ResultGreat:
			stats.Hit300++
		case ResultGood:
			stats.Hit100++
			allGreat = false
		case ResultMeh:
			stats.Hit50++
			allGreat, flawless = false, false
		default:
			stats.Misses++
			allGreat, flawless = false, false
		}

		if j.Result.IsHit() {
			combo++

			for _, tick := range j.Tickset {
				if tick {
					combo++
				}
			}

			stats.MaxCombo = max(stats.MaxCombo, combo)
		} else {
			combo = 0
		}

		if i == len(judgements)-1 || isNewCombo(i+1) {
			if allGreat {
				stats.Hit300k++
			} else if flawless {
				stats.Hit100k++
			}

			allGreat, flawless = true, true
		}
	}

	total := stats.Hit300 + stats.Hit100 + stats.Hit50 + stats.Misses

	stats.Accuracy = 1
	if total > 0 {
		stats.Accuracy = float64(300*stats.Hit300+100*stats.Hit100+50*stats.Hit50) / float64(300*total)
	}

	stats.FullCombo = stats.Misses == 0

	return stats
}
