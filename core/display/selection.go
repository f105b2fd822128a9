package display

// Selection records a text selection in the view: the column it was
// made in, the first and last row it spans, and the selected text.
type Selection struct {
	Column int
	Start  int
	End    int
	Text   string
}

// SelectionState tracks the view's current selection, if any. The zero
// value has no selection.
type SelectionState struct {
	sel Selection
	set bool
}

// Set records a selection. Non-negative column and rows and non-empty
// text are caller preconditions; violating them panics.
func (s *SelectionState) Set(column, start, end int, text string) {
	if column < 0 || start < 0 || end < 0 {
		panic("display: negative selection bounds")
	}
	if text == "" {
		panic("display: empty selection text")
	}
	s.sel = Selection{Column: column, Start: start, End: end, Text: text}
	s.set = true
}

// Clear drops the current selection.
func (s *SelectionState) Clear() {
	s.sel = Selection{}
	s.set = false
}

// Active reports whether a selection exists.
func (s *SelectionState) Active() bool { return s.set }

// Text returns the selected text, or "" without a selection.
func (s *SelectionState) Text() string { return s.sel.Text }

// Selection returns the current selection and whether one exists.
func (s *SelectionState) Selection() (Selection, bool) { return s.sel, s.set }
