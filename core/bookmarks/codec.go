package bookmarks

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/Versemark/core/encoding"
	"github.com/FocuswithJustin/Versemark/core/errors"
	"github.com/FocuswithJustin/Versemark/internal/logging"
)

// Persistence format constants.
const (
	rootTag       = "SwordBookmarks"
	syntaxVersion = "1"

	folderTag   = "Folder"
	bookmarkTag = "Bookmark"
)

// Serialize renders the subtree rooted at root as a SwordBookmarks XML
// document, UTF-8 encoded. The zero handle serializes the whole tree.
// Stale handles serialize to nil. Safe to call from the deferred-save
// goroutine while other goroutines mutate the tree.
func (m *Model) Serialize(root Handle) []byte {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	idx := m.resolve(root)
	if idx < 0 {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, "<%s %s=%q>\n", rootTag, "syntaxVersion", syntaxVersion)
	for _, c := range m.arena[idx].children {
		m.writeNode(&buf, c, 1)
	}
	fmt.Fprintf(&buf, "</%s>\n", rootTag)
	return buf.Bytes()
}

// writeNode recursively writes one node as a Folder or Bookmark element.
func (m *Model) writeNode(buf *bytes.Buffer, idx int32, depth int) {
	n := &m.arena[idx]
	writeIndent(buf, depth)

	if n.kind == KindFolder {
		fmt.Fprintf(buf, `<%s caption="%s"`, folderTag, encoding.EscapeXMLAttr(n.text))
		if len(n.children) == 0 {
			buf.WriteString("/>\n")
			return
		}
		buf.WriteString(">\n")
		for _, c := range n.children {
			m.writeNode(buf, c, depth+1)
		}
		writeIndent(buf, depth)
		fmt.Fprintf(buf, "</%s>\n", folderTag)
		return
	}

	// moduledescription is derived metadata written for external
	// consumers; it is never read back.
	moduleDescription := ""
	if mod := m.lookupModule(n.moduleName); mod != nil {
		moduleDescription = mod.Description()
	}

	fmt.Fprintf(buf, `<%s modulename="%s" key="%s" description="%s" moduledescription="%s"`,
		bookmarkTag,
		encoding.EscapeXMLAttr(n.moduleName),
		encoding.EscapeXMLAttr(n.key),
		encoding.EscapeXMLAttr(n.descr),
		encoding.EscapeXMLAttr(moduleDescription))
	if n.text != "" {
		fmt.Fprintf(buf, ` title="%s"`, encoding.EscapeXMLAttr(n.text))
	}
	buf.WriteString("/>\n")
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

// LoadDocument parses a SwordBookmarks XML document and appends the
// parsed folders and bookmarks as children of the node at root. A
// document whose outer element is not SwordBookmarks is rejected
// without mutation. Returns true when at least one node was added.
func (m *Model) LoadDocument(data []byte, root Handle) (bool, error) {
	m.treeMu.Lock()
	defer m.treeMu.Unlock()
	rootIdx := m.resolve(root)
	if rootIdx < 0 {
		return false, errors.ErrStaleHandle
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return false, errors.NewParse("XML", "", err.Error())
	}

	var docElem *xmlquery.Node
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			docElem = child
			break
		}
	}
	if docElem == nil {
		return false, errors.NewParse("XML", "", "no document element")
	}
	if docElem.Data != rootTag {
		logging.Warn("not a bookmark XML file", "root_tag", docElem.Data)
		return false, errors.ErrNotBookmarkFile
	}

	oldCount := len(m.arena[rootIdx].children)
	added := 0
	for child := docElem.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		if m.loadElement(child, rootIdx) {
			added++
		}
	}

	if added == 0 {
		return false, nil
	}
	if m.listener != nil {
		m.listener.RowsInserted(root, oldCount, oldCount+added-1)
	}
	return true, nil
}

// loadElement builds one node (with subtree) from a Folder or Bookmark
// element and appends it under parentIdx. Unknown elements are skipped.
func (m *Model) loadElement(elem *xmlquery.Node, parentIdx int32) bool {
	switch elem.Data {
	case folderTag:
		idx := m.alloc(node{
			kind:  KindFolder,
			icon:  folderIcon,
			flags: folderFlags,
			text:  elem.SelectAttr("caption"),
		})
		m.insertChild(parentIdx, len(m.arena[parentIdx].children), idx)
		for child := elem.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.ElementNode {
				m.loadElement(child, idx)
			}
		}
		return true

	case bookmarkTag:
		// The module name is kept even when the module is no longer
		// installed.
		moduleName := elem.SelectAttr("modulename")
		key := elem.SelectAttr("key")
		text := elem.SelectAttr("title")
		if text == "" {
			name := moduleName
			if name == "" {
				name = "unknown"
			}
			text = header(key, name)
		}
		idx := m.alloc(node{
			kind:       KindBookmark,
			icon:       bookmarkIcon,
			flags:      bookmarkFlags,
			text:       text,
			moduleName: moduleName,
			key:        key,
			descr:      elem.SelectAttr("description"),
		})
		m.insertChild(parentIdx, len(m.arena[parentIdx].children), idx)
		return true
	}
	return false
}
