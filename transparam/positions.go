// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package transparam

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// ParsePositions parses a list of 1-based positions
// separated by commas,
// and returns the sorted 0-based positions.
// Ranges can be given with a dash,
// for example "145,156-160".
func ParsePositions(s string) ([]int, error) {
	var pos []int
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		from, to, isRange := strings.Cut(v, "-")
		first, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("invalid position %q: %v", v, err)
		}
		last := first
		if isRange {
			last, err = strconv.Atoi(strings.TrimSpace(to))
			if err != nil {
				return nil, fmt.Errorf("invalid position %q: %v", v, err)
			}
		}
		if first < 1 || last < first {
			return nil, fmt.Errorf("invalid position %q", v)
		}
		for p := first; p <= last; p++ {
			pos = append(pos, p-1)
		}
	}
	slices.Sort(pos)
	return slices.Compact(pos), nil
}
