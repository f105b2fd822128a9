// Package bookmarks implements the bookmarks tree: an ordered tree of
// folders and bookmark leaves exposed through an index-based contract
// suitable for binding to a tree view, persisted as SwordBookmarks XML.
//
// Nodes live in an arena and are addressed by generation-checked
// Handles: removing a subtree invalidates every handle into it, and a
// stale handle degrades to a no-op instead of addressing a reused slot.
// The zero Handle stands for the synthetic root folder.
package bookmarks

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/FocuswithJustin/Versemark/core/encoding"
	"github.com/FocuswithJustin/Versemark/core/verse"
	"github.com/FocuswithJustin/Versemark/internal/logging"
)

// ModuleType classifies an installed module.
type ModuleType int

// Module type values.
const (
	ModuleUnknown ModuleType = iota
	ModuleBible
	ModuleCommentary
	ModuleLexicon
	ModuleGenericBook
)

// Module is what the tree needs to know about an installed module.
type Module interface {
	// Name is the module's unique name, e.g. "KJV".
	Name() string
	// Type classifies the module.
	Type() ModuleType
	// Description is the module's descriptive metadata.
	Description() string
}

// Resolver resolves a stored module name to a live module. Lookup
// returns nil when the module is not installed; bookmark display
// degrades gracefully in that case.
type Resolver interface {
	Lookup(name string) Module
}

// Listener receives structural notifications, for a binding layer that
// mirrors the tree. All callbacks run synchronously inside the mutating
// call.
type Listener interface {
	RowsInserted(parent Handle, first, last int)
	RowsRemoved(parent Handle, first, last int)
	DataChanged(h Handle)
	LayoutChanged(parent Handle)
}

// SortOrder selects the direction of SortItems.
type SortOrder int

// Sort orders.
const (
	Ascending SortOrder = iota
	Descending
)

// Option configures a Model.
type Option func(*Model)

// WithResolver sets the module resolver.
func WithResolver(r Resolver) Option {
	return func(m *Model) { m.resolver = r }
}

// WithLocale sets the display locale used to localize Bible and
// commentary keys and to collate sort comparisons.
func WithLocale(loc verse.Locale) Option {
	return func(m *Model) { m.locale = loc }
}

// WithListener sets the structural notification listener.
func WithListener(l Listener) Option {
	return func(m *Model) { m.listener = l }
}

// Model is the bookmarks tree.
type Model struct {
	// treeMu orders tree mutations against a deferred save running on
	// the timer goroutine. Serialize and every mutating method take it.
	treeMu sync.Mutex
	arena  []node
	free   []int32

	resolver Resolver
	locale   verse.Locale
	collator *collate.Collator
	listener Listener

	// deferred save state
	mu       sync.Mutex
	saveFn   func()
	delay    time.Duration
	armed    bool
	saveTimr *time.Timer
}

// New creates an empty model with a synthetic root folder.
func New(opts ...Option) *Model {
	m := &Model{locale: verse.English}
	m.arena = []node{{
		alive: true,
		kind:  KindFolder,
		text:  "Root",
		icon:  folderIcon,
		flags: folderFlags,
	}}
	for _, opt := range opts {
		opt(m)
	}
	m.collator = collate.New(language.Make(string(m.locale)))
	return m
}

// header renders the standard "key (module)" bookmark caption.
func header(key, moduleName string) string {
	return key + " (" + moduleName + ")"
}

// Navigation

// RowCount returns the number of children under parent.
func (m *Model) RowCount(parent Handle) int {
	idx := m.resolve(parent)
	if idx < 0 {
		return 0
	}
	return len(m.arena[idx].children)
}

// ColumnCount is always 1; the tree is a single-column model.
func (m *Model) ColumnCount(Handle) int { return 1 }

// HasChildren reports whether parent has at least one child.
func (m *Model) HasChildren(parent Handle) bool { return m.RowCount(parent) > 0 }

// Index returns the handle of the row-th child of parent, or the zero
// handle when the position does not exist.
func (m *Model) Index(row int, parent Handle) Handle {
	idx := m.resolve(parent)
	if idx < 0 || row < 0 || row >= len(m.arena[idx].children) {
		return Handle{}
	}
	return m.handleFor(m.arena[idx].children[row])
}

// Parent returns the handle of h's parent folder; the zero handle for
// top-level nodes, the root, and stale handles.
func (m *Model) Parent(h Handle) Handle {
	idx := m.resolve(h)
	if idx <= 0 {
		return Handle{}
	}
	return m.handleFor(m.arena[idx].parent)
}

// Row returns h's position in its parent's child sequence, or -1 for
// the root and stale handles.
func (m *Model) Row(h Handle) int {
	idx := m.resolve(h)
	if idx <= 0 {
		return -1
	}
	return m.rowOf(idx)
}

// Type checks

// IsFolder reports whether h addresses a folder. The root is a folder.
func (m *Model) IsFolder(h Handle) bool {
	idx := m.resolve(h)
	return idx >= 0 && m.arena[idx].kind == KindFolder
}

// IsBookmark reports whether h addresses a bookmark leaf.
func (m *Model) IsBookmark(h Handle) bool {
	idx := m.resolve(h)
	return idx >= 0 && m.arena[idx].kind == KindBookmark
}

// Data access

// Data returns the facet of h selected by role, or "" for stale
// handles and unknown roles.
func (m *Model) Data(h Handle, role Role) string {
	idx := m.resolve(h)
	if idx < 0 {
		return ""
	}
	n := &m.arena[idx]
	switch role {
	case RoleDisplay, RoleEdit:
		return n.text
	case RoleTooltip:
		if n.kind == KindBookmark {
			return m.bookmarkTooltip(idx)
		}
		return n.tooltip
	case RoleIcon:
		return n.icon
	case RoleType:
		if n.kind == KindBookmark {
			return "bookmark"
		}
		return "folder"
	}
	return ""
}

// bookmarkTooltip renders the rich-text tooltip for a bookmark: the
// "key (module)" header, the free title when distinct, and the
// description. Empty when the module does not resolve.
func (m *Model) bookmarkTooltip(idx int32) string {
	n := &m.arena[idx]
	mod := m.lookupModule(n.moduleName)
	if mod == nil {
		return ""
	}
	hdr := header(m.localizedKey(idx), mod.Name())
	h := encoding.EscapeHTML(hdr)
	descr := encoding.EscapeHTML(n.descr)
	if n.text == hdr {
		return "<b>" + h + "</b><hr>" + descr
	}
	return "<b>" + h + "</b><br>" + encoding.EscapeHTML(n.text) + "<hr>" + descr
}

// SetData mutates h's text (display/edit role) or tooltip. Any
// successful mutation schedules a deferred save. Returns false for
// stale handles and roles that are not writable.
func (m *Model) SetData(h Handle, value string, role Role) bool {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(h)
	if idx < 0 {
		return false
	}
	switch role {
	case RoleDisplay, RoleEdit:
		m.arena[idx].text = value
	case RoleTooltip:
		m.arena[idx].tooltip = value
	default:
		return false
	}
	if m.listener != nil {
		m.listener.DataChanged(h)
	}
	m.needSave()
	return true
}

// Flags returns h's capability flags, or 0 for stale handles.
func (m *Model) Flags(h Handle) Flags {
	idx := m.resolve(h)
	if idx < 0 {
		return 0
	}
	return m.arena[idx].flags
}

// Structural mutation

// InsertRows inserts count empty bookmark nodes at row under parent.
// Row bounds are a caller precondition; violating them panics.
func (m *Model) InsertRows(row, count int, parent Handle) bool {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(parent)
	if idx < 0 {
		return false
	}
	if row < 0 || row > len(m.arena[idx].children) || count < 0 {
		panic("bookmarks: InsertRows position out of range")
	}
	for i := 0; i < count; i++ {
		child := m.alloc(node{
			kind:  KindBookmark,
			icon:  bookmarkIcon,
			flags: bookmarkFlags,
		})
		m.insertChild(idx, row+i, child)
	}
	if m.listener != nil && count > 0 {
		m.listener.RowsInserted(parent, row, row+count-1)
	}
	return true
}

// RemoveRows removes count children starting at row under parent,
// destroying the removed subtrees. Handles into removed subtrees become
// stale. Row bounds are a caller precondition; violating them panics.
func (m *Model) RemoveRows(row, count int, parent Handle) bool {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(parent)
	if idx < 0 {
		return false
	}
	if row < 0 || count < 0 || row+count > len(m.arena[idx].children) {
		panic("bookmarks: RemoveRows range out of bounds")
	}
	children := m.arena[idx].children
	for _, c := range children[row : row+count] {
		m.freeSubtree(c)
	}
	m.arena[idx].children = append(children[:row], children[row+count:]...)
	if m.listener != nil && count > 0 {
		m.listener.RowsRemoved(parent, row, row+count-1)
	}
	m.needSave()
	return true
}

// AddBookmark constructs a bookmark under parent at row (negative row
// appends) and returns its handle. The zero handle is returned when
// parent does not denote a folder. For Bible and commentary modules
// the key is canonicalized to its English form before storage.
func (m *Model) AddBookmark(row int, parent Handle, mod Module, key, description, title string) Handle {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(parent)
	if idx < 0 || m.arena[idx].kind != KindFolder {
		return Handle{}
	}
	r := row
	if r < 0 {
		r += len(m.arena[idx].children) + 1
	}
	if r < 0 || r > len(m.arena[idx].children) {
		panic("bookmarks: AddBookmark position out of range")
	}

	stored := key
	if mod.Type() == ModuleBible || mod.Type() == ModuleCommentary {
		if canonical, err := verse.Canonicalize(key, m.locale); err == nil {
			stored = canonical
		}
	}
	text := title
	if text == "" {
		text = header(key, mod.Name())
	}

	child := m.alloc(node{
		kind:       KindBookmark,
		icon:       bookmarkIcon,
		flags:      bookmarkFlags,
		text:       text,
		moduleName: mod.Name(),
		key:        stored,
		descr:      description,
	})
	m.insertChild(idx, r, child)
	if m.listener != nil {
		m.listener.RowsInserted(parent, r, r)
	}
	m.needSave()
	return m.handleFor(child)
}

// AddFolder constructs a folder under parent at row (negative row
// appends) and returns its handle. The zero handle is returned when
// parent does not denote a folder. An empty name defaults to
// "New folder".
func (m *Model) AddFolder(row int, parent Handle, name string) Handle {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(parent)
	if idx < 0 || m.arena[idx].kind != KindFolder {
		return Handle{}
	}
	r := row
	if r < 0 {
		r += len(m.arena[idx].children) + 1
	}
	if r < 0 || r > len(m.arena[idx].children) {
		panic("bookmarks: AddFolder position out of range")
	}
	if name == "" {
		name = "New folder"
	}
	child := m.alloc(node{
		kind:  KindFolder,
		icon:  folderIcon,
		flags: folderFlags,
		text:  name,
	})
	m.insertChild(idx, r, child)
	if m.listener != nil {
		m.listener.RowsInserted(parent, r, r)
	}
	m.needSave()
	return m.handleFor(child)
}

// CopyItems copies the selection src into parent at row and returns the
// handles of the created nodes. The whole operation is rejected (nil
// result, no mutation) when the selection holds a folder alongside any
// other item, more than one folder, or a folder whose subtree contains
// parent. Bookmarks are copied individually; a single selected folder
// is deep-copied with its full subtree.
func (m *Model) CopyItems(row int, parent Handle, src []Handle) []Handle {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	parentIdx := m.resolve(parent)
	if parentIdx < 0 {
		return nil
	}
	if row < 0 || row > len(m.arena[parentIdx].children) {
		panic("bookmarks: CopyItems position out of range")
	}

	// Validate before allocating anything: rejection must not mutate.
	folders := 0
	for _, h := range src {
		idx := m.resolve(h)
		if idx < 0 {
			return nil
		}
		if m.arena[idx].kind == KindFolder {
			folders++
			if m.isDescendant(idx, parentIdx) {
				return nil
			}
		}
	}
	if folders > 0 && len(src) > 1 {
		return nil
	}
	if len(src) == 0 {
		return nil
	}

	created := make([]int32, 0, len(src))
	for _, h := range src {
		created = append(created, m.deepCopy(m.resolve(h)))
	}
	for i, c := range created {
		m.insertChild(parentIdx, row+i, c)
	}
	if m.listener != nil {
		m.listener.RowsInserted(parent, row, row+len(created)-1)
	}
	m.needSave()

	result := make([]Handle, len(created))
	for i, c := range created {
		result[i] = m.handleFor(c)
	}
	return result
}

// SortItems sorts folder children by locale-aware text comparison. When
// parent is the root every folder in the tree is resorted recursively;
// otherwise only parent's direct children move. Handles stay attached
// to their nodes across the resort. Equal texts keep their relative
// order.
func (m *Model) SortItems(parent Handle, order SortOrder) {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(parent)
	if idx < 0 || m.arena[idx].kind != KindFolder {
		return
	}

	var folders []int32
	if idx == rootIndex {
		queue := []int32{rootIndex}
		for len(queue) > 0 {
			at := queue[0]
			queue = queue[1:]
			if m.arena[at].kind == KindFolder {
				folders = append(folders, at)
			}
			queue = append(queue, m.arena[at].children...)
		}
	} else {
		folders = []int32{idx}
	}

	for _, f := range folders {
		children := m.arena[f].children
		sort.SliceStable(children, func(i, j int) bool {
			cmp := m.collator.CompareString(m.arena[children[i]].text, m.arena[children[j]].text)
			if order == Ascending {
				return cmp < 0
			}
			return cmp > 0
		})
		if m.listener != nil {
			m.listener.LayoutChanged(m.handleFor(f))
		}
		m.needSave()
	}
}

// HasDescendant reports whether ancestor is a folder that is, or
// transitively contains, candidate.
func (m *Model) HasDescendant(ancestor, candidate Handle) bool {
	aIdx := m.resolve(ancestor)
	if aIdx < 0 || m.arena[aIdx].kind != KindFolder {
		return false
	}
	cIdx := m.resolve(candidate)
	if cIdx < 0 {
		return false
	}
	return m.isDescendant(aIdx, cIdx)
}

// Bookmark accessors

// lookupModule resolves a module name, tolerating a nil resolver.
func (m *Model) lookupModule(name string) Module {
	if m.resolver == nil || name == "" {
		return nil
	}
	return m.resolver.Lookup(name)
}

// localizedKey renders a bookmark's canonical key in the display
// locale. Keys of non-scripture modules, and keys whose module does not
// resolve, return verbatim.
func (m *Model) localizedKey(idx int32) string {
	n := &m.arena[idx]
	mod := m.lookupModule(n.moduleName)
	if mod == nil {
		logging.UnresolvedModule(n.moduleName, n.key)
		return n.key
	}
	if mod.Type() != ModuleBible && mod.Type() != ModuleCommentary {
		return n.key
	}
	localized, err := verse.Localize(n.key, m.locale)
	if err != nil {
		return n.key
	}
	return localized
}

// Module returns the resolved module of the bookmark at h, or nil for
// folders, stale handles, and uninstalled modules.
func (m *Model) Module(h Handle) Module {
	idx := m.resolve(h)
	if idx < 0 || m.arena[idx].kind != KindBookmark {
		return nil
	}
	return m.lookupModule(m.arena[idx].moduleName)
}

// ModuleName returns the stored module name of the bookmark at h.
func (m *Model) ModuleName(h Handle) string {
	idx := m.resolve(h)
	if idx < 0 || m.arena[idx].kind != KindBookmark {
		return ""
	}
	return m.arena[idx].moduleName
}

// Key returns the bookmark's key localized for display, or "" for
// non-bookmarks.
func (m *Model) Key(h Handle) string {
	idx := m.resolve(h)
	if idx < 0 || m.arena[idx].kind != KindBookmark {
		return ""
	}
	return m.localizedKey(idx)
}

// CanonicalKey returns the stored locale-independent key, or "" for
// non-bookmarks.
func (m *Model) CanonicalKey(h Handle) string {
	idx := m.resolve(h)
	if idx < 0 || m.arena[idx].kind != KindBookmark {
		return ""
	}
	return m.arena[idx].key
}

// Description returns the bookmark's free-text description, or "" for
// non-bookmarks.
func (m *Model) Description(h Handle) string {
	idx := m.resolve(h)
	if idx < 0 || m.arena[idx].kind != KindBookmark {
		return ""
	}
	return m.arena[idx].descr
}

// SetDescription updates the bookmark's description and schedules a
// deferred save. No-op for non-bookmarks.
func (m *Model) SetDescription(h Handle, description string) {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(h)
	if idx < 0 || m.arena[idx].kind != KindBookmark {
		return
	}
	m.arena[idx].descr = description
	if m.listener != nil {
		m.listener.DataChanged(h)
	}
	m.needSave()
}

// Deferred save

// SetAutosave wires the deferred-save trigger: after any mutation a
// one-shot timer fires save once delay elapses. Mutations while the
// timer is armed neither reset nor duplicate it. The save callback runs
// on the timer goroutine. Attaching autosave twice is a programming
// error.
func (m *Model) SetAutosave(delay time.Duration, save func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveFn != nil {
		panic("bookmarks: autosave already attached")
	}
	m.saveFn = save
	m.delay = delay
}

// needSave arms the deferred-save timer unless it is already armed or
// no autosave is attached.
func (m *Model) needSave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveFn == nil || m.armed {
		return
	}
	m.armed = true
	m.saveTimr = time.AfterFunc(m.delay, func() {
		m.mu.Lock()
		m.armed = false
		save := m.saveFn
		m.mu.Unlock()
		save()
	})
}

// CancelPendingSave stops an armed deferred save. Reports whether a
// save was pending.
func (m *Model) CancelPendingSave() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.armed {
		return false
	}
	m.saveTimr.Stop()
	m.armed = false
	return true
}

// Close flushes a pending deferred save synchronously. The model
// remains usable afterwards; Close exists so teardown never loses a
// scheduled save.
func (m *Model) Close() {
	m.mu.Lock()
	pending := m.armed
	if pending {
		m.saveTimr.Stop()
		m.armed = false
	}
	save := m.saveFn
	m.mu.Unlock()
	if pending && save != nil {
		save()
	}
}

// Len reports the total number of live nodes, excluding the root.
func (m *Model) Len() int {
	return m.countSubtree(rootIndex) - 1
}
