package aggregate

import (
	"sort"
	"strings"
)

// treeNode is a directory or file in the rendered file tree.
type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return n.children != nil
}

// renderTree writes a fenced tree of the given slash-separated paths.
func renderTree(b *strings.Builder, files []string) {
	root := &treeNode{children: map[string]*treeNode{}}
	for _, f := range files {
		parts := strings.Split(f, "/")
		node := root
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part}
				if i < len(parts)-1 {
					child.children = map[string]*treeNode{}
				}
				node.children[part] = child
			}
			node = child
		}
	}

	b.WriteString("<!-- File tree -->\n```\n.\n")
	writeTreeLevel(b, root, "")
	b.WriteString("```\n\n")
}

// writeTreeLevel renders the children of node, directories first and then
// files, each group ordered case-insensitively.
func writeTreeLevel(b *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix + connector + entry.name)
		if entry.isDir() {
			b.WriteString("/\n")
			writeTreeLevel(b, entry, prefix+extension)
			continue
		}
		b.WriteString("\n")
	}
}
