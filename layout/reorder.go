package layout

// reorderLine brings the runs of a line into visual order (rule L2 of the
// Unicode bidi algorithm): from the highest level down to the lowest odd
// level, every maximal sequence of runs at that level or above is reversed.
// A trailing line break stays in place.
func reorderLine(line *Line) {
	runs := line.runs
	n := len(runs)
	if n > 0 && runs[n-1].isLinebreak() {
		n--
	}
	if n < 2 {
		return
	}
	maxLevel, minLevel := uint8(0), uint8(255)
	for _, r := range runs[:n] {
		maxLevel = max(maxLevel, r.level)
		minLevel = min(minLevel, r.level)
	}
	lowestOdd := minLevel | 1
	for level := maxLevel; level >= lowestOdd; level-- {
		for i := 0; i < n; {
			if runs[i].level < level {
				i++
				continue
			}
			j := i + 1
			for j < n && runs[j].level >= level {
				j++
			}
			reverseRuns(runs[i:j])
			i = j
		}
	}
}

func reverseRuns(runs []*Run) {
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
}
