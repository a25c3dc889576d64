package testutil

import "strings"

// alphabet is skewed towards common letters so random text shares
// substrings the way natural words do.
const alphabet = "eeeeaaaiiooouuttnnsrrhldcmpbgkwyfvxzjq"

// RandomWords returns count distinct lowercase words of the given length.
// count must not exceed the number of distinct words the alphabet can form.
func RandomWords(rng *RNG, count, length int) []string {
	seen := make(map[string]struct{}, count)
	words := make([]string, 0, count)

	var b strings.Builder
	for len(words) < count {
		b.Reset()
		for range length {
			b.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		w := b.String()
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// RandomText concatenates between 1 and maxWords words picked from words.
func RandomText(rng *RNG, words []string, maxWords int) string {
	n := 1 + rng.Intn(maxWords)
	var b strings.Builder
	for range n {
		b.WriteString(words[rng.Intn(len(words))])
	}
	return b.String()
}
