// Command gen draws the outliner in a hidden window and writes a JPEG of each
// tree view state to doc/imgs/.
//
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	gui "github.com/go-theft-auto/uiframework"
	"github.com/go-theft-auto/uiframework/backend/opengl"
	"github.com/go-theft-auto/uiframework/internal/inspector"
	"github.com/go-theft-auto/uiframework/internal/outline"
)

const shotW, shotH = 320, 400

func init() { runtime.LockOSThread() }

func main() {
	if err := run(filepath.Join("doc", "imgs")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// shot is one captured state. frames defaults to 2 so that state set up
// before the first frame (selection, rename) is reconciled when drawn.
type shot struct {
	name   string
	w      int
	tree   *gui.TreeView
	side   func(ctx *gui.Context)
	frames int
}

func run(outDir string) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	// Large enough for every shot; resizing a hidden window is asynchronous.
	window, err := glfw.CreateWindow(800, 600, "doc-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(shotW, shotH)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	shots := scenes()
	for _, s := range shots {
		img, err := capture(renderer, s)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		if err := writeJPEG(filepath.Join(outDir, s.name+".jpg"), img); err != nil {
			return err
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.w, shotH)
	}
	fmt.Printf("\n%d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(r *opengl.Renderer, s shot) (*image.RGBA, error) {
	r.Resize(s.w, shotH)
	ui := gui.New(r, gui.WithStyle(gui.GTAStyle()))
	size := gui.Vec2{X: float32(s.w), Y: shotH}

	for range max(s.frames, 2) {
		gl.Viewport(0, 0, int32(s.w), shotH)
		gl.ClearColor(0.12, 0.12, 0.14, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		ctx := ui.Begin(gui.NewInputState(), size, 1.0/60)
		ctx.SetCursorPos(8, 8)
		ctx.Panel("Scene", gui.Width(shotW-16), gui.Height(shotH-16))(func() {
			s.tree.Draw(ctx)
		})
		if s.side != nil {
			ctx.SetCursorPos(shotW+8, 8)
			ctx.Panel("Properties", gui.Width(float32(s.w-shotW-16)))(func() { s.side(ctx) })
		}
		if err := ui.End(); err != nil {
			return nil, err
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, s.w, shotH))
	gl.ReadPixels(0, 0, int32(s.w), shotH, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	// GL rows run bottom-up.
	row := make([]byte, img.Stride)
	for top, bot := 0, shotH-1; top < bot; top, bot = top+1, bot-1 {
		a := img.Pix[top*img.Stride : (top+1)*img.Stride]
		b := img.Pix[bot*img.Stride : (bot+1)*img.Stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
	return img, nil
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func scenes() []shot {
	tree := func(opts ...gui.TreeOption) *gui.TreeView {
		tv := gui.NewTreeView(opts...)
		outline.Scene().Populate(tv)
		return tv
	}
	named := func(tv *gui.TreeView, header string) (found *gui.TreeNode) {
		tv.Walk(func(n *gui.TreeNode) bool {
			if n.Header() == header {
				found = n
			}
			return found == nil
		})
		return found
	}

	selected := tree()
	for _, h := range []string{"Player", "Pedestrian 01", "Pedestrian 02"} {
		selected.AddSelection(named(selected, h))
	}

	filtered := tree(gui.WithFilterMode(gui.FilterFuzzy))
	filtered.SetSearchText("pd")

	renaming := tree(gui.WithSearchBox(false))
	if n := named(renaming, "Water"); n != nil {
		n.ActivateRename()
	}

	columns := tree(gui.WithSearchBox(false), gui.WithColumns(2))
	columns.Walk(func(n *gui.TreeNode) bool {
		n.Hooks.RenderOverride = func(ctx *gui.Context, n *gui.TreeNode, a gui.NodeRenderArgs) {
			st := ctx.Style()
			ctx.AddText(a.Content.X, a.Content.Y, n.Header(), st.TextColor)
			ctx.AddText(a.Row.X+a.ColumnWidth+6, a.Content.Y, fmt.Sprintf("#%d", n.ID()), st.TextDisabledColor)
		}
		return true
	})

	inspected := tree()
	props := inspector.New(inspected)
	inspected.AddSelection(named(inspected, "Player"))

	return []shot{
		{name: "tree_view", w: shotW, tree: tree()},
		{name: "tree_view_selection", w: shotW, tree: selected},
		{name: "tree_view_filter", w: shotW, tree: filtered},
		{name: "tree_view_rename", w: shotW, tree: renaming, frames: 3},
		{name: "tree_view_columns", w: shotW, tree: columns},
		{name: "tree_view_properties", w: 2 * shotW, tree: inspected, side: props.Draw},
	}
}
