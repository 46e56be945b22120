package perft

import (
	"fmt"
	"sort"
)

// ExpectedStart holds the published perft totals for the starting position,
// indexed by depth.
var ExpectedStart = map[int]uint64{
	1: 20,
	2: 400,
	3: 8902,
	4: 197281,
	5: 4865609,
	6: 119060324,
	7: 3195901860,
	8: 84998978956,
}

// ExpectedStartDivide5 is the published depth-5 divide of the starting position.
var ExpectedStartDivide5 = map[string]uint64{
	"a2a3": 181046,
	"a2a4": 217832,
	"b1a3": 198572,
	"b1c3": 234656,
	"b2b3": 215255,
	"b2b4": 216145,
	"c2c3": 222861,
	"c2c4": 240082,
	"d2d3": 328511,
	"d2d4": 361790,
	"e2e3": 402988,
	"e2e4": 405385,
	"f2f3": 178889,
	"f2f4": 198473,
	"g1f3": 233491,
	"g1h3": 198502,
	"g2g3": 217210,
	"g2g4": 214048,
	"h2h3": 181044,
	"h2h4": 218829,
}

// Diff is one root move whose count differs from the reference.
type Diff struct {
	Move     string
	Got      uint64
	Expected uint64
	Missing  bool // the move was not generated at all
	Extra    bool // the move is not in the reference
}

func (d Diff) String() string {
	switch {
	case d.Missing:
		return fmt.Sprintf("%s: MOVE NOT FOUND (expected %d)", d.Move, d.Expected)
	case d.Extra:
		return fmt.Sprintf("%s: %d (not in reference)", d.Move, d.Got)
	}
	return fmt.Sprintf("%s: %d (expected %d), diff = %d", d.Move, d.Got, d.Expected, int64(d.Got)-int64(d.Expected))
}

// Compare returns the entries that disagree with expected, sorted by move.
func Compare(entries []Entry, expected map[string]uint64) []Diff {
	var diffs []Diff
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		s := e.Move.String()
		seen[s] = true
		want, ok := expected[s]
		switch {
		case !ok:
			diffs = append(diffs, Diff{Move: s, Got: e.Nodes, Extra: true})
		case want != e.Nodes:
			diffs = append(diffs, Diff{Move: s, Got: e.Nodes, Expected: want})
		}
	}
	for s, want := range expected {
		if !seen[s] {
			diffs = append(diffs, Diff{Move: s, Expected: want, Missing: true})
		}
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Move < diffs[j].Move })
	return diffs
}
