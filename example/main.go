// Example shows a scene outliner: a tree view populated from an embedded YAML
// outline next to a properties panel that follows the selection.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Flags:
//
//	-theme name|file.toml     style: default, dark, light, gta, or a theme file
//	-outline file.yaml        load this outline instead of the built-in scene
//	-fuzzy                    fuzzy search instead of substring
//	-verbose                  debug logging of tree transitions
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	gui "github.com/go-theft-auto/uiframework"
	"github.com/go-theft-auto/uiframework/backend/opengl"
	"github.com/go-theft-auto/uiframework/internal/inspector"
	"github.com/go-theft-auto/uiframework/internal/outline"
)

const (
	windowWidth  = 960
	windowHeight = 640
	windowTitle  = "uiframework outliner"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	themeFlag := flag.String("theme", "gta", "built-in style name or TOML theme file")
	outlineFlag := flag.String("outline", "", "YAML outline file (default: built-in scene)")
	fuzzyFlag := flag.Bool("fuzzy", false, "fuzzy search")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	gui.SetVerbose(*verbose)

	if err := run(*themeFlag, *outlineFlag, *fuzzyFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// styleOption resolves -theme to a built-in style or a theme file.
func styleOption(name string) (gui.GUIOption, error) {
	if s, ok := gui.StyleByName(name); ok {
		return gui.WithStyle(s), nil
	}
	var (
		t   *gui.Theme
		err error
	)
	if strings.HasSuffix(name, ".toml") {
		t, err = gui.LoadThemeFile(name)
	} else {
		t, err = gui.LoadTheme(name)
	}
	if err != nil {
		return nil, err
	}
	return gui.WithTheme(t), nil
}

func loadOutline(path string) (*outline.Document, error) {
	if path == "" {
		return outline.Scene(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	return outline.Parse(data)
}

// outliner is the application state around the tree.
type outliner struct {
	tree  *gui.TreeView
	props *inspector.Panel
}

func newOutliner(doc *outline.Document, fuzzy bool) *outliner {
	mode := gui.FilterSubstring
	if fuzzy {
		mode = gui.FilterFuzzy
	}
	o := &outliner{tree: gui.NewTreeView(gui.WithFilterMode(mode), gui.WithTreeID("outliner"))}
	doc.Populate(o.tree)
	o.props = inspector.New(o.tree)

	o.tree.Walk(func(n *gui.TreeNode) bool {
		o.attachMenu(n)
		n.OnRenamed(func(n *gui.TreeNode, old string) {
			o.props.Log(fmt.Sprintf("renamed %q to %q", old, n.Header()))
		})
		return true
	})
	o.tree.OnNodeDropped(func(dragged, target *gui.TreeNode) {
		if target.AddChild(dragged) {
			target.SetExpanded(true)
			o.props.Log(fmt.Sprintf("moved %q under %q", dragged.Header(), target.Header()))
		}
	})
	return o
}

func (o *outliner) attachMenu(n *gui.TreeNode) {
	rename := gui.NewMenuItem("Rename", n.ActivateRename)
	rename.ToolTip = "F2"
	sort := gui.NewMenuItem("Sort", nil)
	sort.Add(
		gui.NewMenuItem("A to Z", n.Sort),
		gui.NewMenuItem("Z to A", n.SortDescending),
	)
	addChild := gui.NewMenuItem("Add child", func() {
		c := n.NewChild(fmt.Sprintf("Node %d", n.ChildCount()+1))
		c.CanRename, c.CanDrag = true, true
		o.attachMenu(c)
		o.tree.ScrollToNode(c)
		c.ActivateRename()
	})
	remove := gui.NewMenuItem("Delete", func() {
		if p := n.Parent(); p != nil {
			p.RemoveChild(n)
		} else {
			o.tree.RemoveRoot(n)
		}
		o.props.Log(fmt.Sprintf("deleted %q", n.Header()))
	})
	n.MenuItems = []*gui.MenuItem{rename, addChild, sort, gui.NewSeparator(), remove}
	if !n.CanRename {
		n.MenuItems = n.MenuItems[1:]
	}
}

func run(themeName, outlinePath string, fuzzy bool) error {
	style, err := styleOption(themeName)
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	doc, err := loadOutline(outlinePath)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Delete()

	input := opengl.NewWindowInput(window)
	ui := gui.New(renderer, style)
	app := newOutliner(doc, fuzzy)

	last := glfw.GetTime()
	for !window.ShouldClose() {
		in := input.Poll()
		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		renderer.Resize(w, h)
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		ctx := ui.Begin(in, gui.Vec2{X: float32(w), Y: float32(h)}, dt)

		treeW := float32(w) * 0.45
		ctx.SetCursorPos(8, 8)
		ctx.Panel(doc.Title, gui.Width(treeW), gui.Height(float32(h)-16))(func() {
			app.tree.Draw(ctx)
		})
		ctx.SetCursorPos(treeW+16, 8)
		ctx.Panel("Properties", gui.Width(float32(w)-treeW-24))(func() {
			app.props.Draw(ctx)
		})

		if err := ui.End(); err != nil {
			return fmt.Errorf("gui render: %w", err)
		}
		window.SwapBuffers()
	}
	return nil
}
