package domain

// FirstWords truncates text on a word boundary within max characters,
// appending an ellipsis when anything was cut.
func FirstWords(text string, max int) string {
	if len(text) <= max {
		return text
	}
	i := 0
	j := 0
	for i < max && j >= 0 {
		i = j
		j = indexSpace(text, i+1, max)
	}
	return text[:i] + "..."
}

func indexSpace(s string, from, to int) int {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	for k := from; k < to; k++ {
		if s[k] == ' ' {
			return k
		}
	}
	return -1
}
