package models

import "encoding/json"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// FileTreeNode is either a file leaf (Size, Extension) or a directory
// (Children). The serialized form only carries the fields of its kind.
type FileTreeNode struct {
	Type      string
	Size      int64
	Extension string
	Children  map[string]*FileTreeNode
}

func NewDirectoryNode() *FileTreeNode {
	return &FileTreeNode{Type: NodeTypeDirectory, Children: make(map[string]*FileTreeNode)}
}

func NewFileNode(size int64, extension string) *FileTreeNode {
	return &FileTreeNode{Type: NodeTypeFile, Size: size, Extension: extension}
}

// IsDir reports whether the node is a directory.
func (n *FileTreeNode) IsDir() bool {
	return n != nil && n.Type == NodeTypeDirectory
}

// CountFiles returns the number of file leaves below n.
func (n *FileTreeNode) CountFiles() int {
	if n == nil {
		return 0
	}
	if !n.IsDir() {
		return 1
	}
	total := 0
	for _, child := range n.Children {
		total += child.CountFiles()
	}
	return total
}

func (n *FileTreeNode) asMap() map[string]interface{} {
	if !n.IsDir() {
		return map[string]interface{}{
			"type":      NodeTypeFile,
			"size":      n.Size,
			"extension": n.Extension,
		}
	}
	children := make(map[string]interface{}, len(n.Children))
	for name, child := range n.Children {
		children[name] = child.asMap()
	}
	return map[string]interface{}{
		"type":     NodeTypeDirectory,
		"children": children,
	}
}

func (n *FileTreeNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.asMap())
}

func (n *FileTreeNode) MarshalYAML() (interface{}, error) {
	return n.asMap(), nil
}
