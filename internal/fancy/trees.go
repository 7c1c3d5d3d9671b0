package fancy

import (
	"github.com/charmbracelet/lipgloss/tree"
)

// Tree returns a new tree with common styling applied
func Tree() *tree.Tree {
	t := tree.New()
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)
	return t
}

// TruncateString truncates a string if it exceeds maxLength runes
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

// ComponentTree creates a component-specific styled tree
type ComponentTree struct {
	tree *tree.Tree
}

// NewComponentTree creates a new component tree with appropriate styling
func NewComponentTree(title string) *ComponentTree {
	return &ComponentTree{tree: Tree().Root(title)}
}

// Tree returns the underlying tree
func (c *ComponentTree) Tree() *tree.Tree {
	return c.tree
}

// AddChild adds a child node (a string or another tree) under the root.
func (c *ComponentTree) AddChild(child any) {
	if ct, ok := child.(*ComponentTree); ok {
		child = ct.tree
	}
	c.tree.Child(child)
}

// String renders the tree
func (c *ComponentTree) String() string {
	return c.tree.String()
}
