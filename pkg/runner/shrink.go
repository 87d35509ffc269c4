package runner

import "strings"

// Minimize reduces a failing candidate to a simpler one that still fails,
// using a plain iterative loop: drop fragment runs (halves first, then
// singles), then truncate individual fragments from the right. Each probe
// costs one call to failing; budget caps the total. It returns the smallest
// reproducer found and the number of accepted reductions.
func Minimize(candidate string, failing func(string) bool, budget int, observe func(string)) (string, int) {
	current := candidate
	accepted := 0
	spent := 0

	probe := func(simpler string) bool {
		if spent >= budget || simpler == current {
			return false
		}
		spent++
		if !failing(simpler) {
			return false
		}
		current = simpler
		accepted++
		if observe != nil {
			observe(current)
		}
		return true
	}

	for {
		improved := false

		// Fragment deletion. Wider cuts first so large candidates
		// collapse quickly.
		frags := strings.Split(current, "-")
		if n := len(frags); n > 1 {
			for width := n / 2; width >= 1 && !improved; width /= 2 {
				for start := 0; start+width <= len(frags); start++ {
					rest := make([]string, 0, len(frags)-width)
					rest = append(rest, frags[:start]...)
					rest = append(rest, frags[start+width:]...)
					if probe(strings.Join(rest, "-")) {
						improved = true
						break
					}
				}
			}
		}

		// Fragment truncation: halve, then shave one rune.
		if !improved {
			frags = strings.Split(current, "-")
			for i, frag := range frags {
				if frag == "" {
					continue
				}
				for _, cut := range []int{len(frag) / 2, len(frag) - 1} {
					shorter := append([]string(nil), frags...)
					shorter[i] = frag[:cut]
					if probe(strings.Join(shorter, "-")) {
						improved = true
						break
					}
				}
				if improved {
					break
				}
			}
		}

		if !improved || spent >= budget {
			return current, accepted
		}
	}
}
