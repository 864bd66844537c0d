// Package outline loads tree outlines from YAML and populates tree views
// with them.
package outline

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	gui "github.com/go-theft-auto/uiframework"
)

//go:embed scene.yaml
var sceneYAML []byte

// ErrEmptyName is returned for outline entries without a name.
var ErrEmptyName = errors.New("outline entry has no name")

// Entry is one node of an outline.
type Entry struct {
	Name     string  `yaml:"name"`
	Icon     string  `yaml:"icon,omitempty"`
	Tooltip  string  `yaml:"tooltip,omitempty"`
	Expanded bool    `yaml:"expanded,omitempty"`
	Checkbox bool    `yaml:"checkbox,omitempty"`
	Checked  *bool   `yaml:"checked,omitempty"`
	Locked   bool    `yaml:"locked,omitempty"` // no rename, no drag
	Children []Entry `yaml:"children,omitempty"`
}

// Document is a titled forest of entries.
type Document struct {
	Title string  `yaml:"title"`
	Roots []Entry `yaml:"roots"`
}

// Parse decodes and validates an outline.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}
	for i := range doc.Roots {
		if err := validate(&doc.Roots[i], fmt.Sprintf("roots[%d]", i)); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

func validate(e *Entry, path string) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyName, path)
	}
	for i := range e.Children {
		if err := validate(&e.Children[i], fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Scene returns the built-in sample outline.
func Scene() *Document {
	doc, err := Parse(sceneYAML)
	if err != nil {
		panic(err)
	}
	return doc
}

// Populate adds the document's roots to tv and returns the number of nodes
// created.
func (d *Document) Populate(tv *gui.TreeView) int {
	count := 0
	var build func(e Entry) *gui.TreeNode
	build = func(e Entry) *gui.TreeNode {
		n := tv.NewNode(e.Name)
		n.Icon = e.Icon
		n.ToolTip = e.Tooltip
		n.CanRename = !e.Locked
		n.CanDrag = !e.Locked
		n.HasCheckbox = e.Checkbox
		if e.Checked != nil {
			n.SetChecked(*e.Checked)
		}
		count++
		for _, c := range e.Children {
			n.AddChild(build(c))
		}
		n.SetExpanded(e.Expanded)
		return n
	}
	for _, r := range d.Roots {
		tv.AddRoot(build(r))
	}
	return count
}

// Marshal encodes the current contents of tv as an outline.
func Marshal(title string, tv *gui.TreeView) ([]byte, error) {
	doc := Document{Title: title}
	var dump func(n *gui.TreeNode) Entry
	dump = func(n *gui.TreeNode) Entry {
		e := Entry{
			Name:     n.Header(),
			Icon:     n.Icon,
			Tooltip:  n.ToolTip,
			Expanded: n.IsExpanded(),
			Checkbox: n.HasCheckbox,
			Locked:   !n.CanRename && !n.CanDrag,
		}
		if !n.IsChecked() {
			f := false
			e.Checked = &f
		}
		for _, c := range n.Children() {
			e.Children = append(e.Children, dump(c))
		}
		return e
	}
	for _, r := range tv.Roots() {
		doc.Roots = append(doc.Roots, dump(r))
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshal outline: %w", err)
	}
	return out, nil
}
