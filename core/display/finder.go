package display

// TextSource is the read surface the finder scans: a row-indexed text
// model that knows how many highlighted matches each row renders.
type TextSource interface {
	RowCount() int
	// HighlightCount returns the number of highlighted matches in the
	// row's rendered text.
	HighlightCount(row int) int
}

// FindState addresses one highlighted match: a row and a 1-based
// sub-match position within that row. SubMatch 0 means no match is
// selected yet.
type FindState struct {
	Row      int
	SubMatch int
}

// scanLimit caps the linear scan in either direction; rows beyond it
// are never visited in a single step.
const scanLimit = 1000

// Finder steps through highlighted matches row by row. The zero state
// means no search is in progress; the first step starts from the row
// the caller supplies.
type Finder struct {
	src   TextSource
	state *FindState
}

// NewFinder creates a finder over src.
func NewFinder(src TextSource) *Finder {
	return &Finder{src: src}
}

// State returns the current find state and whether a search is in
// progress.
func (f *Finder) State() (FindState, bool) {
	if f.state == nil {
		return FindState{}, false
	}
	return *f.state, true
}

// Reset forgets the current position. Called when the highlight words
// change, so the next step restarts from the cursor.
func (f *Finder) Reset() { f.state = nil }

// Find advances to the next (or previous) highlighted match, starting
// a new search at current when none is in progress. Returns the
// resulting state; ok is false when no search position exists at all.
func (f *Finder) Find(current int, backward bool) (FindState, bool) {
	if f.state == nil {
		f.state = &FindState{Row: current}
	}
	if backward {
		f.previous(f.state.Row)
	} else {
		f.next(f.state.Row)
	}
	return *f.state, true
}

// next moves to the following match: first deeper into the start row,
// then scanning forward up to scanLimit rows for the next row with any
// match.
func (f *Finder) next(start int) {
	if f.src.HighlightCount(start) > f.state.SubMatch {
		f.state.Row = start
		f.state.SubMatch++
		return
	}
	if start >= f.src.RowCount() {
		return
	}
	row := start + 1
	for i := 0; i < scanLimit && row < f.src.RowCount(); i++ {
		if f.src.HighlightCount(row) > 0 {
			f.state.Row = row
			f.state.SubMatch = 1
			return
		}
		row++
	}
}

// previous moves to the preceding match: first backward within the
// start row, then scanning backward up to scanLimit rows and entering
// the nearest matching row at its last sub-match.
func (f *Finder) previous(start int) {
	if f.src.HighlightCount(start) > 0 && f.state.SubMatch == 0 {
		f.state.Row = start
		f.state.SubMatch = 1
		return
	}
	if start <= 0 {
		return
	}
	row := start
	if f.state.SubMatch == 0 {
		row--
	}
	for i := 0; i < scanLimit && row >= 0; i++ {
		if num := f.src.HighlightCount(row); num > 0 {
			f.state.Row = row
			if f.state.SubMatch == 0 {
				f.state.SubMatch = num
			} else {
				f.state.SubMatch--
			}
			if f.state.SubMatch != 0 {
				return
			}
		}
		row--
	}
}
