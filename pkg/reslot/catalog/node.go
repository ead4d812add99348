package catalog

// PlaceholderPrefix marks file-array entries whose real name is unknown.
const PlaceholderPrefix = "0x"

// IsPlaceholder reports whether path is a hashed placeholder name.
func IsPlaceholder(path string) bool {
	return len(path) >= len(PlaceholderPrefix) && path[:len(PlaceholderPrefix)] == PlaceholderPrefix
}

// DirectoryNode is one level of the game's directory-info hierarchy.
// Nodes are built once while loading and never mutated afterwards.
type DirectoryNode struct {
	Name     string
	Files    []int
	children map[string]*DirectoryNode
	order    []string
}

// NewDirectoryNode creates an empty node.
func NewDirectoryNode(name string, files ...int) *DirectoryNode {
	return &DirectoryNode{
		Name:     name,
		Files:    files,
		children: make(map[string]*DirectoryNode),
	}
}

// AddChild attaches child under its name and returns it. Adding a name twice
// replaces the earlier child but keeps its position.
func (n *DirectoryNode) AddChild(child *DirectoryNode) *DirectoryNode {
	if _, ok := n.children[child.Name]; !ok {
		n.order = append(n.order, child.Name)
	}
	n.children[child.Name] = child
	return child
}

// Child returns the named child.
func (n *DirectoryNode) Child(name string) (*DirectoryNode, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Children returns child nodes in index order.
func (n *DirectoryNode) Children() []*DirectoryNode {
	out := make([]*DirectoryNode, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out
}

// ChildNames returns child names in index order.
func (n *DirectoryNode) ChildNames() []string {
	return append([]string(nil), n.order...)
}
