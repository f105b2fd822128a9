package bookmarks

// Kind discriminates the two node variants of the tree.
type Kind int

const (
	// KindFolder is a container node grouping bookmarks and folders.
	KindFolder Kind = iota
	// KindBookmark is a leaf node referencing a key in a module.
	KindBookmark
)

// Role selects which facet of a node Data returns.
type Role int

const (
	// RoleDisplay is the node's display text.
	RoleDisplay Role = iota
	// RoleEdit is the editable form of the display text.
	RoleEdit
	// RoleTooltip is the node's tooltip (rich text for bookmarks).
	RoleTooltip
	// RoleIcon is the node's icon reference.
	RoleIcon
	// RoleType is the node's type discriminator: "bookmark" or "folder".
	RoleType
)

// RoleNames maps roles to the names a binding layer uses.
func RoleNames() map[Role]string {
	return map[Role]string{
		RoleDisplay: "display",
		RoleEdit:    "edit",
		RoleTooltip: "tooltip",
		RoleIcon:    "icon",
		RoleType:    "itemtype",
	}
}

// Flags are per-node capability bits.
type Flags uint8

const (
	// FlagEditable allows in-place editing of the display text.
	FlagEditable Flags = 1 << iota
	// FlagSelectable allows selection.
	FlagSelectable
	// FlagDragEnabled allows the node to be dragged.
	FlagDragEnabled
	// FlagDropEnabled allows dropping onto the node.
	FlagDropEnabled
	// FlagEnabled marks the node as interactive.
	FlagEnabled
)

// Default flags per variant.
const (
	folderFlags   = FlagEditable | FlagSelectable | FlagDragEnabled | FlagDropEnabled | FlagEnabled
	bookmarkFlags = FlagSelectable | FlagDragEnabled | FlagDropEnabled | FlagEnabled
)

// Icon references per variant.
const (
	folderIcon   = "folder"
	bookmarkIcon = "bookmark"
)

// Handle addresses a node in the model's arena. The zero Handle is the
// invalid handle: it resolves to the synthetic root folder, which is
// itself never addressable by a valid handle. A Handle carries the
// generation of the slot it was created for, so handles to removed
// nodes resolve to nothing instead of to whatever reused their slot.
type Handle struct {
	idx int32
	gen uint32
}

// IsValid reports whether h addresses a non-root node. The zero Handle
// stands for both "invalid" and "root", matching the index contract.
func (h Handle) IsValid() bool { return h != Handle{} }

// node is one arena slot: a tagged union of folder and bookmark.
type node struct {
	gen   uint32
	alive bool
	kind  Kind

	parent   int32
	children []int32

	text    string
	tooltip string
	icon    string
	flags   Flags

	// bookmark payload; unused for folders
	moduleName string
	key        string // canonical (English-locale) key
	descr      string
}

const rootIndex = int32(0)

// alloc returns a fresh arena slot, reusing freed slots.
func (m *Model) alloc(n node) int32 {
	if len(m.free) > 0 {
		idx := m.free[len(m.free)-1]
		m.free = m.free[:len(m.free)-1]
		n.gen = m.arena[idx].gen
		n.alive = true
		m.arena[idx] = n
		return idx
	}
	n.alive = true
	m.arena = append(m.arena, n)
	return int32(len(m.arena) - 1)
}

// freeSubtree releases a node and all descendants back to the arena.
// Bumping the generation invalidates any outstanding handles.
func (m *Model) freeSubtree(idx int32) {
	for _, c := range m.arena[idx].children {
		m.freeSubtree(c)
	}
	m.arena[idx] = node{gen: m.arena[idx].gen + 1}
	m.free = append(m.free, idx)
}

// resolve maps a handle to its arena index, or -1 for stale handles.
// The zero handle resolves to the root.
func (m *Model) resolve(h Handle) int32 {
	if !h.IsValid() {
		return rootIndex
	}
	if h.idx <= 0 || int(h.idx) >= len(m.arena) {
		return -1
	}
	n := &m.arena[h.idx]
	if !n.alive || n.gen != h.gen {
		return -1
	}
	return h.idx
}

// handleFor builds a generation-checked handle for an arena index.
// The root maps to the zero handle.
func (m *Model) handleFor(idx int32) Handle {
	if idx == rootIndex {
		return Handle{}
	}
	return Handle{idx: idx, gen: m.arena[idx].gen}
}

// rowOf returns idx's position in its parent's child slice.
func (m *Model) rowOf(idx int32) int {
	parent := m.arena[idx].parent
	for i, c := range m.arena[parent].children {
		if c == idx {
			return i
		}
	}
	return -1
}

// insertChild links child into parent's child slice at row.
func (m *Model) insertChild(parent int32, row int, child int32) {
	m.arena[child].parent = parent
	siblings := m.arena[parent].children
	siblings = append(siblings, 0)
	copy(siblings[row+1:], siblings[row:])
	siblings[row] = child
	m.arena[parent].children = siblings
}

// deepCopy duplicates the subtree rooted at idx, returning the new
// root's arena index. The copy is detached: its parent is unset until
// it is inserted.
func (m *Model) deepCopy(idx int32) int32 {
	src := m.arena[idx]
	dup := src
	dup.children = nil
	dupIdx := m.alloc(dup)
	for _, c := range src.children {
		childDup := m.deepCopy(c)
		m.arena[childDup].parent = dupIdx
		m.arena[dupIdx].children = append(m.arena[dupIdx].children, childDup)
	}
	return dupIdx
}

// isDescendant reports whether candidate is ancestor or lies in
// ancestor's subtree.
func (m *Model) isDescendant(ancestor, candidate int32) bool {
	for at := candidate; ; at = m.arena[at].parent {
		if at == ancestor {
			return true
		}
		if at == rootIndex {
			return false
		}
	}
}

// countSubtree returns the number of nodes in idx's subtree, including
// idx itself.
func (m *Model) countSubtree(idx int32) int {
	n := 1
	for _, c := range m.arena[idx].children {
		n += m.countSubtree(c)
	}
	return n
}
