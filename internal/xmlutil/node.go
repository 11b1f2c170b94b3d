// Package xmlutil parses small XML documents (SOAP responses) into a generic
// element tree and looks elements up either by qualified name or, as a
// fallback, by local name alone.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is a parsed XML element.
type Node struct {
	Space    string
	Local    string
	Text     string
	Children []*Node
}

// Parse decodes data into an element tree and returns its root element.
func Parse(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var stack []*Node
	var root *Node
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode xml: %w", err)
		}
		switch actual := token.(type) {
		case xml.StartElement:
			node := &Node{Space: actual.Name.Space, Local: actual.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(actual)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("failed to decode xml: no root element")
	}
	return root, nil
}

// Walk visits n and all its descendants in document order until fn returns false.
func (n *Node) Walk(fn func(node *Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant (excluding n) with the given namespace and local name.
func (n *Node) Find(space, local string) *Node {
	var found *Node
	for _, child := range n.children() {
		child.Walk(func(node *Node) bool {
			if node.Local == local && node.Space == space {
				found = node
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// FindLocal returns the first element (including n) whose local name matches, ignoring namespaces.
func (n *Node) FindLocal(local string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Local == local {
			found = node
			return false
		}
		return true
	})
	return found
}

// Lookup tries a namespace-qualified match first and falls back to a local-name scan.
func (n *Node) Lookup(space, local string) *Node {
	if n == nil {
		return nil
	}
	if node := n.Find(space, local); node != nil {
		return node
	}
	return n.FindLocal(local)
}

// LookupText returns the trimmed text of the element found by Lookup, or "" when absent.
// A qualified match with empty text still falls back to the local-name scan.
func (n *Node) LookupText(space, local string) string {
	if n == nil {
		return ""
	}
	if node := n.Find(space, local); node != nil {
		if text := strings.TrimSpace(node.Text); text != "" {
			return text
		}
	}
	if node := n.FindLocal(local); node != nil {
		return strings.TrimSpace(node.Text)
	}
	return ""
}

func (n *Node) children() []*Node {
	if n == nil {
		return nil
	}
	return n.Children
}
