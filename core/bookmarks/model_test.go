package bookmarks

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/FocuswithJustin/Versemark/core/verse"
)

// fakeModule implements Module for tests.
type fakeModule struct {
	name  string
	typ   ModuleType
	descr string
}

func (f *fakeModule) Name() string        { return f.name }
func (f *fakeModule) Type() ModuleType    { return f.typ }
func (f *fakeModule) Description() string { return f.descr }

// fakeResolver implements Resolver over a fixed set of modules.
type fakeResolver map[string]*fakeModule

func (r fakeResolver) Lookup(name string) Module {
	if m, ok := r[name]; ok {
		return m
	}
	return nil
}

var kjv = &fakeModule{name: "KJV", typ: ModuleBible, descr: "King James Version (1769)"}

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	return New(opts...)
}

func TestAddFolderDefaultName(t *testing.T) {
	m := newTestModel(t)

	h := m.AddFolder(0, Handle{}, "")
	if !h.IsValid() {
		t.Fatal("AddFolder under root should succeed")
	}
	if got := m.Data(h, RoleDisplay); got != "New folder" {
		t.Errorf("default folder name = %q, want %q", got, "New folder")
	}
	if got := m.RowCount(Handle{}); got != 1 {
		t.Errorf("RowCount(root) = %d, want 1", got)
	}
	if got := m.Data(h, RoleType); got != "folder" {
		t.Errorf("RoleType = %q, want folder", got)
	}
}

func TestAddFolderUnderBookmarkFails(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")
	bm := m.AddBookmark(0, folder, kjv, "Gen 1:1", "", "")
	if !bm.IsValid() {
		t.Fatal("AddBookmark failed")
	}

	if h := m.AddFolder(0, bm, "x"); h.IsValid() {
		t.Error("AddFolder under a bookmark should return the invalid handle")
	}
	if h := m.AddBookmark(0, bm, kjv, "Gen 1:2", "", ""); h.IsValid() {
		t.Error("AddBookmark under a bookmark should return the invalid handle")
	}
}

func TestAddBookmarkAppendsOnNegativeRow(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")

	first := m.AddBookmark(-1, folder, kjv, "Gen 1:1", "", "")
	second := m.AddBookmark(-1, folder, kjv, "Gen 1:2", "", "")

	if m.Row(first) != 0 || m.Row(second) != 1 {
		t.Errorf("rows = %d, %d; want 0, 1", m.Row(first), m.Row(second))
	}
	if m.RowCount(folder) != 2 {
		t.Errorf("RowCount = %d, want 2", m.RowCount(folder))
	}
}

func TestAddFolderAppendsOnNegativeRow(t *testing.T) {
	m := newTestModel(t)
	m.AddFolder(0, Handle{}, "a")

	appended := m.AddFolder(-1, Handle{}, "b")

	if m.Row(appended) != 1 {
		t.Errorf("Row = %d, want 1", m.Row(appended))
	}
	if m.RowCount(Handle{}) != 2 {
		t.Errorf("RowCount = %d, want 2", m.RowCount(Handle{}))
	}
}

func TestAddBookmarkCanonicalizesBibleKey(t *testing.T) {
	resolver := fakeResolver{"KJV": kjv}
	m := newTestModel(t, WithResolver(resolver))

	folder := m.AddFolder(0, Handle{}, "f")
	h := m.AddBookmark(0, folder, kjv, "Gen 1:1", "", "")

	if got := m.CanonicalKey(h); got != "Genesis 1:1" {
		t.Errorf("CanonicalKey = %q, want %q", got, "Genesis 1:1")
	}
	if got := m.Key(h); got != "Genesis 1:1" {
		t.Errorf("Key = %q, want %q", got, "Genesis 1:1")
	}
}

func TestAddBookmarkGermanLocale(t *testing.T) {
	resolver := fakeResolver{"GerLut": {name: "GerLut", typ: ModuleBible}}
	m := newTestModel(t, WithResolver(resolver), WithLocale(verse.German))

	folder := m.AddFolder(0, Handle{}, "f")
	h := m.AddBookmark(0, folder, resolver["GerLut"], "Römer 8:28", "", "")

	if got := m.CanonicalKey(h); got != "Romans 8:28" {
		t.Errorf("CanonicalKey = %q, want %q", got, "Romans 8:28")
	}
	if got := m.Key(h); got != "Römer 8:28" {
		t.Errorf("Key = %q, want %q", got, "Römer 8:28")
	}
}

func TestAddBookmarkLexiconKeyVerbatim(t *testing.T) {
	strongs := &fakeModule{name: "StrongsGreek", typ: ModuleLexicon}
	resolver := fakeResolver{"StrongsGreek": strongs}
	m := newTestModel(t, WithResolver(resolver))

	folder := m.AddFolder(0, Handle{}, "f")
	h := m.AddBookmark(0, folder, strongs, "G2316", "", "")

	if got := m.CanonicalKey(h); got != "G2316" {
		t.Errorf("lexicon key should be stored verbatim, got %q", got)
	}
	if got := m.Key(h); got != "G2316" {
		t.Errorf("lexicon key should be returned verbatim, got %q", got)
	}
}

func TestKeyUnresolvedModule(t *testing.T) {
	m := newTestModel(t) // no resolver at all
	folder := m.AddFolder(0, Handle{}, "f")
	h := m.AddBookmark(0, folder, kjv, "Gen 1:1", "", "")

	// Canonicalization happened at construction; display degrades to
	// the stored canonical key.
	if got := m.Key(h); got != "Genesis 1:1" {
		t.Errorf("Key = %q, want stored canonical key", got)
	}
	if m.Module(h) != nil {
		t.Error("Module should be nil without a resolver")
	}
}

func TestLeafAccessorsOnFolder(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")

	if m.Key(folder) != "" || m.Description(folder) != "" || m.ModuleName(folder) != "" {
		t.Error("leaf accessors should be empty for folders")
	}
	m.SetDescription(folder, "ignored") // no-op
	if m.Description(folder) != "" {
		t.Error("SetDescription on a folder should be a no-op")
	}
}

func TestSetDescription(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")
	h := m.AddBookmark(0, folder, kjv, "Gen 1:1", "old", "")

	m.SetDescription(h, "new")
	if got := m.Description(h); got != "new" {
		t.Errorf("Description = %q, want %q", got, "new")
	}
}

func TestRemoveRows(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")
	a := m.AddBookmark(-1, folder, kjv, "Gen 1:1", "", "")
	b := m.AddBookmark(-1, folder, kjv, "Gen 1:2", "", "")
	c := m.AddBookmark(-1, folder, kjv, "Gen 1:3", "", "")

	before := m.RowCount(folder)
	if !m.RemoveRows(1, 2, folder) {
		t.Fatal("RemoveRows failed")
	}
	if got := m.RowCount(folder); got != before-2 {
		t.Errorf("RowCount = %d, want %d", got, before-2)
	}

	// The removed subtrees are unreachable: their handles went stale.
	if m.Data(b, RoleDisplay) != "" || m.Data(c, RoleDisplay) != "" {
		t.Error("handles into removed rows should be stale")
	}
	if m.Data(a, RoleDisplay) == "" {
		t.Error("surviving row should stay reachable")
	}
}

func TestRemoveRowsDestroysSubtree(t *testing.T) {
	m := newTestModel(t)
	outer := m.AddFolder(0, Handle{}, "outer")
	inner := m.AddFolder(0, outer, "inner")
	leaf := m.AddBookmark(0, inner, kjv, "Gen 1:1", "", "")

	m.RemoveRows(0, 1, Handle{})

	for _, h := range []Handle{outer, inner, leaf} {
		if m.Data(h, RoleDisplay) != "" {
			t.Errorf("handle into destroyed subtree still resolves")
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestRemoveRowsBoundsPanic(t *testing.T) {
	m := newTestModel(t)
	m.AddFolder(0, Handle{}, "f")

	defer func() {
		if recover() == nil {
			t.Error("RemoveRows out of bounds should panic")
		}
	}()
	m.RemoveRows(0, 2, Handle{})
}

func TestInsertRowsPlaceholders(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")

	if !m.InsertRows(0, 2, folder) {
		t.Fatal("InsertRows failed")
	}
	if got := m.RowCount(folder); got != 2 {
		t.Fatalf("RowCount = %d, want 2", got)
	}
	h := m.Index(0, folder)
	if got := m.Data(h, RoleType); got != "bookmark" {
		t.Errorf("placeholder type = %q, want bookmark", got)
	}
	if !m.SetData(h, "Gen 1:1 (KJV)", RoleEdit) {
		t.Error("SetData on placeholder failed")
	}
}

func TestHandleReuseIsDetected(t *testing.T) {
	m := newTestModel(t)
	old := m.AddFolder(0, Handle{}, "first")
	m.RemoveRows(0, 1, Handle{})

	// The replacement likely reuses the freed arena slot; the old
	// handle must not resolve to it.
	fresh := m.AddFolder(0, Handle{}, "second")
	if m.Data(old, RoleDisplay) != "" {
		t.Error("stale handle resolved after slot reuse")
	}
	if got := m.Data(fresh, RoleDisplay); got != "second" {
		t.Errorf("fresh handle = %q, want second", got)
	}
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")
	bm := m.AddBookmark(0, folder, kjv, "Gen 1:1", "", "")

	if got := m.Index(0, Handle{}); got != folder {
		t.Error("Index(0, root) should return the folder handle")
	}
	if got := m.Index(0, folder); got != bm {
		t.Error("Index(0, folder) should return the bookmark handle")
	}
	if got := m.Index(1, folder); got.IsValid() {
		t.Error("out of range Index should be invalid")
	}
	if got := m.Parent(bm); got != folder {
		t.Error("Parent(bookmark) should be the folder")
	}
	if got := m.Parent(folder); got.IsValid() {
		t.Error("Parent of a top-level node should be the zero handle")
	}
	if got := m.Row(bm); got != 0 {
		t.Errorf("Row = %d, want 0", got)
	}
	if m.ColumnCount(Handle{}) != 1 {
		t.Error("ColumnCount should be 1")
	}
	if !m.HasChildren(folder) || m.HasChildren(bm) {
		t.Error("HasChildren misreported")
	}
}

func TestFlags(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")
	bm := m.AddBookmark(0, folder, kjv, "Gen 1:1", "", "")

	if f := m.Flags(folder); f&FlagEditable == 0 || f&FlagDropEnabled == 0 {
		t.Errorf("folder flags = %b", f)
	}
	if f := m.Flags(bm); f&FlagEditable != 0 {
		t.Error("bookmarks are not editable in place")
	}
	if f := m.Flags(bm); f&FlagSelectable == 0 || f&FlagDragEnabled == 0 {
		t.Errorf("bookmark flags = %b", f)
	}
}

func TestSetData(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")

	if !m.SetData(folder, "Renamed", RoleDisplay) {
		t.Fatal("SetData display failed")
	}
	if got := m.Data(folder, RoleDisplay); got != "Renamed" {
		t.Errorf("Data = %q, want Renamed", got)
	}

	if !m.SetData(folder, "tip", RoleTooltip) {
		t.Fatal("SetData tooltip failed")
	}
	if got := m.Data(folder, RoleTooltip); got != "tip" {
		t.Errorf("tooltip = %q, want tip", got)
	}

	if m.SetData(folder, "x", RoleType) {
		t.Error("RoleType should not be writable")
	}
}

func TestBookmarkTooltip(t *testing.T) {
	resolver := fakeResolver{"KJV": kjv}
	m := newTestModel(t, WithResolver(resolver))
	folder := m.AddFolder(0, Handle{}, "f")

	// Display text was built from the un-canonicalized key, so it
	// differs from the localized header and shows on its own line.
	plain := m.AddBookmark(-1, folder, kjv, "Gen 1:1", "In the beginning", "")
	got := m.Data(plain, RoleTooltip)
	want := "<b>Genesis 1:1 (KJV)</b><br>Gen 1:1 (KJV)<hr>In the beginning"
	if got != want {
		t.Errorf("tooltip = %q, want %q", got, want)
	}

	// Distinct title: header<br>title<hr>description form.
	titled := m.AddBookmark(-1, folder, kjv, "Gen 1:1", "start", "Genesis opening")
	got = m.Data(titled, RoleTooltip)
	want = "<b>Genesis 1:1 (KJV)</b><br>Genesis opening<hr>start"
	if got != want {
		t.Errorf("tooltip = %q, want %q", got, want)
	}

	// Matching header collapses the title line.
	m.SetData(plain, "Genesis 1:1 (KJV)", RoleEdit)
	got = m.Data(plain, RoleTooltip)
	want = "<b>Genesis 1:1 (KJV)</b><hr>In the beginning"
	if got != want {
		t.Errorf("tooltip = %q, want %q", got, want)
	}
}

func TestBookmarkTooltipUnresolvedModule(t *testing.T) {
	m := newTestModel(t)
	folder := m.AddFolder(0, Handle{}, "f")
	h := m.AddBookmark(0, folder, kjv, "Gen 1:1", "d", "t")

	if got := m.Data(h, RoleTooltip); got != "" {
		t.Errorf("tooltip without resolvable module = %q, want empty", got)
	}
}

func TestCopyItemsTwoFoldersRejected(t *testing.T) {
	m := newTestModel(t)
	f1 := m.AddFolder(0, Handle{}, "a")
	f2 := m.AddFolder(1, Handle{}, "b")
	target := m.AddFolder(2, Handle{}, "target")

	before := m.Len()
	if got := m.CopyItems(0, target, []Handle{f1, f2}); got != nil {
		t.Errorf("CopyItems with two folders = %v, want nil", got)
	}
	if m.Len() != before {
		t.Error("rejected copy must not mutate the tree")
	}
}

func TestCopyItemsFolderPlusBookmarkRejected(t *testing.T) {
	m := newTestModel(t)
	f := m.AddFolder(0, Handle{}, "a")
	bm := m.AddBookmark(0, f, kjv, "Gen 1:1", "", "")
	target := m.AddFolder(1, Handle{}, "target")

	before := m.Len()
	if got := m.CopyItems(0, target, []Handle{f, bm}); got != nil {
		t.Errorf("CopyItems folder+bookmark = %v, want nil", got)
	}
	if m.Len() != before {
		t.Error("rejected copy must not mutate the tree")
	}
}

func TestCopyItemsIntoOwnSubtreeRejected(t *testing.T) {
	m := newTestModel(t)
	outer := m.AddFolder(0, Handle{}, "outer")
	inner := m.AddFolder(0, outer, "inner")

	before := m.Len()
	if got := m.CopyItems(0, inner, []Handle{outer}); got != nil {
		t.Errorf("CopyItems into own subtree = %v, want nil", got)
	}
	if got := m.CopyItems(0, outer, []Handle{outer}); got != nil {
		t.Errorf("CopyItems into itself = %v, want nil", got)
	}
	if m.Len() != before {
		t.Error("rejected copy must not mutate the tree")
	}
}

func TestCopyItemsBookmarks(t *testing.T) {
	m := newTestModel(t)
	src := m.AddFolder(0, Handle{}, "src")
	a := m.AddBookmark(-1, src, kjv, "Gen 1:1", "da", "")
	b := m.AddBookmark(-1, src, kjv, "Gen 1:2", "db", "")
	target := m.AddFolder(1, Handle{}, "target")

	copies := m.CopyItems(0, target, []Handle{a, b})
	if len(copies) != 2 {
		t.Fatalf("copied %d items, want 2", len(copies))
	}
	for i, h := range copies {
		if m.Parent(h) != target {
			t.Errorf("copy %d not under target", i)
		}
		if m.Row(h) != i {
			t.Errorf("copy %d at row %d, want contiguous run", i, m.Row(h))
		}
	}

	// Copies are independent of the originals.
	m.SetDescription(copies[0], "changed")
	if m.Description(a) != "da" {
		t.Error("mutating a copy changed the original")
	}
}

func TestCopyItemsSingleFolderDeepCopy(t *testing.T) {
	m := newTestModel(t)
	src := m.AddFolder(0, Handle{}, "src")
	m.AddBookmark(-1, src, kjv, "Gen 1:1", "", "")
	sub := m.AddFolder(1, src, "sub")
	m.AddBookmark(0, sub, kjv, "Exod 3:14", "", "")
	target := m.AddFolder(1, Handle{}, "target")

	copies := m.CopyItems(0, target, []Handle{src})
	if len(copies) != 1 {
		t.Fatalf("copied %d items, want 1", len(copies))
	}
	dup := copies[0]
	if m.Data(dup, RoleDisplay) != "src" {
		t.Errorf("copied folder caption = %q", m.Data(dup, RoleDisplay))
	}
	if m.RowCount(dup) != 2 {
		t.Fatalf("copied folder has %d children, want 2", m.RowCount(dup))
	}
	dupSub := m.Index(1, dup)
	if m.Data(dupSub, RoleDisplay) != "sub" || m.RowCount(dupSub) != 1 {
		t.Error("nested subtree was not deep-copied")
	}
}

func TestSortAscendingDescendingReverse(t *testing.T) {
	m := newTestModel(t)
	f := m.AddFolder(0, Handle{}, "f")
	for _, name := range []string{"Cherith", "Antioch", "Bethel"} {
		m.AddFolder(m.RowCount(f), f, name)
	}

	m.SortItems(f, Ascending)
	asc := childTexts(m, f)
	want := []string{"Antioch", "Bethel", "Cherith"}
	for i := range want {
		if asc[i] != want[i] {
			t.Fatalf("ascending order = %v, want %v", asc, want)
		}
	}

	m.SortItems(f, Descending)
	desc := childTexts(m, f)
	for i := range asc {
		if desc[i] != asc[len(asc)-1-i] {
			t.Fatalf("descending %v is not the reverse of ascending %v", desc, asc)
		}
	}
}

func TestSortRootRecursive(t *testing.T) {
	m := newTestModel(t)
	outer := m.AddFolder(0, Handle{}, "outer")
	m.AddFolder(0, outer, "zeta")
	m.AddFolder(1, outer, "alpha")
	other := m.AddFolder(1, Handle{}, "another")
	m.AddFolder(0, other, "omega")
	m.AddFolder(1, other, "beta")

	m.SortItems(Handle{}, Ascending)

	if got := childTexts(m, Handle{}); got[0] != "another" || got[1] != "outer" {
		t.Errorf("root children = %v", got)
	}
	if got := childTexts(m, outer); got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("outer children = %v", got)
	}
	if got := childTexts(m, other); got[0] != "beta" || got[1] != "omega" {
		t.Errorf("another children = %v", got)
	}
}

func TestSortNonRootSortsOnlyDirectChildren(t *testing.T) {
	m := newTestModel(t)
	outer := m.AddFolder(0, Handle{}, "outer")
	inner := m.AddFolder(0, outer, "inner")
	m.AddFolder(0, inner, "zzz")
	m.AddFolder(1, inner, "aaa")
	m.AddFolder(1, outer, "above") // sorts before "inner"

	m.SortItems(outer, Ascending)

	if got := childTexts(m, outer); got[0] != "above" || got[1] != "inner" {
		t.Errorf("outer children = %v", got)
	}
	// inner's children must be untouched.
	if got := childTexts(m, inner); got[0] != "zzz" || got[1] != "aaa" {
		t.Errorf("inner children = %v, want untouched order", got)
	}
}

func TestSortKeepsHandlesAttached(t *testing.T) {
	m := newTestModel(t)
	f := m.AddFolder(0, Handle{}, "f")
	zed := m.AddFolder(0, f, "zed")
	ann := m.AddFolder(1, f, "ann")

	m.SortItems(f, Ascending)

	if m.Data(zed, RoleDisplay) != "zed" || m.Data(ann, RoleDisplay) != "ann" {
		t.Error("handles detached from their nodes across sort")
	}
	if m.Row(ann) != 0 || m.Row(zed) != 1 {
		t.Errorf("rows after sort: ann=%d zed=%d", m.Row(ann), m.Row(zed))
	}
}

func TestSortEqualTextsKeepOrder(t *testing.T) {
	m := newTestModel(t)
	f := m.AddFolder(0, Handle{}, "f")
	first := m.AddFolder(0, f, "same")
	second := m.AddFolder(1, f, "same")

	m.SortItems(f, Ascending)

	if m.Row(first) != 0 || m.Row(second) != 1 {
		t.Error("equal texts should keep their relative order")
	}
}

func TestHasDescendant(t *testing.T) {
	m := newTestModel(t)
	outer := m.AddFolder(0, Handle{}, "outer")
	inner := m.AddFolder(0, outer, "inner")
	leaf := m.AddBookmark(0, inner, kjv, "Gen 1:1", "", "")
	sibling := m.AddFolder(1, Handle{}, "sibling")

	tests := []struct {
		name       string
		ancestor   Handle
		candidate  Handle
		wantResult bool
	}{
		{"self", outer, outer, true},
		{"direct child", outer, inner, true},
		{"transitive leaf", outer, leaf, true},
		{"unrelated", outer, sibling, false},
		{"reversed", inner, outer, false},
		{"root contains all", Handle{}, leaf, true},
		{"bookmark is never an ancestor", leaf, leaf, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.HasDescendant(tt.ancestor, tt.candidate); got != tt.wantResult {
				t.Errorf("HasDescendant = %v, want %v", got, tt.wantResult)
			}
		})
	}
}

func TestDeferredSaveFiresOnce(t *testing.T) {
	m := newTestModel(t)
	var fired atomic.Int32
	done := make(chan struct{}, 4)
	m.SetAutosave(20*time.Millisecond, func() {
		fired.Add(1)
		done <- struct{}{}
	})

	// Several mutations in quick succession arm the timer exactly once.
	f := m.AddFolder(0, Handle{}, "a")
	m.AddFolder(1, Handle{}, "b")
	m.SetData(f, "renamed", RoleEdit)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("deferred save never fired")
	}
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("deferred save fired %d times, want 1", got)
	}

	// After firing the trigger is inert until the next mutation.
	m.AddFolder(0, Handle{}, "c")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("deferred save did not rearm after a new mutation")
	}
	if got := fired.Load(); got != 2 {
		t.Fatalf("deferred save fired %d times, want 2", got)
	}
}

func TestCancelPendingSave(t *testing.T) {
	m := newTestModel(t)
	var fired atomic.Int32
	m.SetAutosave(20*time.Millisecond, func() { fired.Add(1) })

	m.AddFolder(0, Handle{}, "a")
	if !m.CancelPendingSave() {
		t.Fatal("expected a pending save to cancel")
	}
	if m.CancelPendingSave() {
		t.Error("second cancel should report nothing pending")
	}
	time.Sleep(60 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("cancelled save still fired")
	}
}

func TestCloseFlushesPendingSave(t *testing.T) {
	m := newTestModel(t)
	var fired atomic.Int32
	m.SetAutosave(time.Hour, func() { fired.Add(1) })

	m.AddFolder(0, Handle{}, "a")
	m.Close()
	if fired.Load() != 1 {
		t.Error("Close should flush the pending save synchronously")
	}

	m.Close()
	if fired.Load() != 1 {
		t.Error("Close without a pending save should not save again")
	}
}

func TestSetAutosaveTwicePanics(t *testing.T) {
	m := newTestModel(t)
	m.SetAutosave(time.Hour, func() {})
	defer func() {
		if recover() == nil {
			t.Error("second SetAutosave should panic")
		}
	}()
	m.SetAutosave(time.Hour, func() {})
}

func TestNoAutosaveNoTimer(t *testing.T) {
	m := newTestModel(t)
	m.AddFolder(0, Handle{}, "a")
	if m.CancelPendingSave() {
		t.Error("mutations without autosave should not arm a timer")
	}
}

func TestDeferredSaveSerializesDuringMutation(t *testing.T) {
	m := newTestModel(t)
	var saves atomic.Int32
	m.SetAutosave(time.Millisecond, func() {
		if m.Serialize(Handle{}) == nil {
			t.Error("serialize of live root returned nil")
		}
		saves.Add(1)
	})

	// Saves fire on the timer goroutine while mutations keep landing.
	for i := 0; i < 200; i++ {
		f := m.AddFolder(-1, Handle{}, "transient")
		m.AddBookmark(-1, f, kjv, "Gen 1:1", "", "")
		m.RemoveRows(0, 1, Handle{})
	}
	m.Close()

	if saves.Load() == 0 {
		t.Fatal("no deferred save ever fired")
	}
	if m.RowCount(Handle{}) != 0 {
		t.Errorf("RowCount = %d, want 0", m.RowCount(Handle{}))
	}
}

func childTexts(m *Model, parent Handle) []string {
	texts := make([]string, 0, m.RowCount(parent))
	for i := 0; i < m.RowCount(parent); i++ {
		texts = append(texts, m.Data(m.Index(i, parent), RoleDisplay))
	}
	return texts
}
