package engine

// MergeLine compacts a line toward index 0 and merges equal neighbors.
// Returns the resulting line and the score gained.
//
// Merges happen in a single left-to-right pass: each pair of equal adjacent
// tiles becomes one tile of double value, and a tile produced by a merge never
// merges again in the same pass, so [2 2 2 2] becomes [4 4 0 0].
func MergeLine(l Line) (Line, int) {
	result, score, _ := mergeLine(l)
	return result, score
}

func mergeLine(l Line) (result Line, score int, merges int) {
	// Gravity: drop empty cells, keep order
	var tiles [Size]int
	n := 0
	for _, v := range l {
		if v != 0 {
			tiles[n] = v
			n++
		}
	}

	writePos := 0
	for i := 0; i < n; i++ {
		if i+1 < n && tiles[i] == tiles[i+1] {
			merged := tiles[i] * 2
			result[writePos] = merged
			score += merged
			merges++
			i++ // second tile of the pair is consumed
		} else {
			result[writePos] = tiles[i]
		}
		writePos++
	}

	// Remaining cells are already zero
	return result, score, merges
}
