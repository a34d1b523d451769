// Command gen renders each widget in a few sample states, captures the
// framebuffer and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
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

	"github.com/go-theft-auto/forms"
	"github.com/go-theft-auto/forms/backend/opengl"
	"github.com/go-theft-auto/forms/lineedit"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name   string // filename without extension
	width  int    // viewport width
	height int    // viewport height
	build  func(s *scene)
}

// scene is the fresh state each screenshot is built in.
type scene struct {
	m      *forms.Manager
	stage  *forms.Stage
	editor *lineedit.Editor
}

// add positions w at (x, y) and puts it on the stage.
func (s *scene) add(w forms.Widget, x, y float64) {
	w.SetPosition(x, y)
	s.stage.Add(w)
}

// click presses and releases the primary button at p.
func (s *scene) click(p forms.Vec2) {
	s.stage.PointerDown(&forms.PointerEvent{Pos: p})
	s.stage.PointerUp(&forms.PointerEvent{Pos: p})
}

func (s *scene) key(k forms.Key, mods forms.Modifiers) {
	s.editor.KeyDown(&forms.KeyEvent{Key: k, Mods: mods})
	s.editor.KeyUp(&forms.KeyEvent{Key: k, Mods: mods})
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600, nil)
	if err != nil {
		return fmt.Errorf("forms renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// The hidden window stays at 800x600, larger than every screenshot, so
	// only the projection changes.
	renderer.Resize(s.width, s.height)

	// Fresh manager per screenshot so focus and styles do not leak.
	editor := lineedit.New()
	m := forms.NewManager(forms.WithPeerFactory(func() forms.Peer { return editor }))
	sc := &scene{
		m:      m,
		stage:  forms.NewStage(m, float64(s.width), float64(s.height)),
		editor: editor,
	}
	s.build(sc)

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.93, 0.94, 0.95, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := sc.stage.Render(renderer); err != nil {
		return err
	}
	for _, w := range sc.stage.Children() {
		w.Destroy()
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func regions() forms.Option {
	return forms.WithOptions(
		forms.SelectOption{Value: "eu", Text: "Europe"},
		forms.SelectOption{Value: "na", Text: "North America"},
		forms.SelectOption{Value: "as", Text: "Asia"},
	)
}

// buildScreenshots returns every screenshot to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "textfield", width: 220, height: 140,
			build: func(s *scene) {
				s.add(forms.NewTextField(s.m, forms.WithPlaceholder("Placeholder")), 16, 16)
				s.add(forms.NewTextField(s.m, forms.WithValue("Some text")), 16, 56)
				s.add(forms.NewTextField(s.m, forms.WithValue("Read only"), forms.WithReadonly(true),
					forms.WithBackgroundColor("#eee")), 16, 96)
			},
		},
		{
			name: "textfield_selection", width: 220, height: 60,
			build: func(s *scene) {
				tf := forms.NewTextField(s.m, forms.WithValue("Selected words"))
				s.add(tf, 16, 16)
				tf.Focus()
				s.key(forms.KeyLeft, forms.ModShift|forms.ModCtrl)
			},
		},
		{
			name: "textfield_overflow", width: 220, height: 60,
			build: func(s *scene) {
				tf := forms.NewTextField(s.m, forms.WithValue("A value far too long to fit in the box"))
				s.add(tf, 16, 16)
				tf.Focus()
			},
		},
		{
			name: "textfield_types", width: 220, height: 100,
			build: func(s *scene) {
				s.add(forms.NewTextField(s.m, forms.WithType(forms.TypePassword), forms.WithValue("hunter2")), 16, 16)
				s.add(forms.NewTextField(s.m, forms.WithType(forms.TypeNumber), forms.WithValue("42.5")), 16, 56)
			},
		},
		{
			name: "textfield_styled", width: 260, height: 70,
			build: func(s *scene) {
				s.add(forms.NewTextField(s.m,
					forms.WithWidth(220), forms.WithPadding(8),
					forms.WithBorder(2, "#1e5fa8"), forms.WithBorderRadius(8),
					forms.WithBackgroundGradient("#fff", "#dde6f0"),
					forms.WithFont("italic 16px Go"), forms.WithTextStroke("#fff", 2),
					forms.WithValue("Styled")), 16, 16)
			},
		},
		{
			name: "button", width: 220, height: 140,
			build: func(s *scene) {
				s.add(forms.NewButton(s.m, forms.WithValue("Left"), forms.WithAlign(forms.AlignLeft)), 16, 16)
				s.add(forms.NewButton(s.m, forms.WithValue("Center")), 16, 56)
				s.add(forms.NewButton(s.m, forms.WithValue("Right"), forms.WithAlign(forms.AlignRight)), 16, 96)
			},
		},
		{
			name: "button_gradient", width: 180, height: 70,
			build: func(s *scene) {
				s.add(forms.NewButton(s.m, forms.WithWidth(120), forms.WithPadding(8),
					forms.WithBorder(1, "#1e5fa8"), forms.WithBorderRadius(4),
					forms.WithBackgroundGradient("#4a90e2", "#2f6fc0"),
					forms.WithBoxShadow("0px 2px 3px rgba(0, 0, 0, 0.3)"),
					forms.WithFont("bold 15px Go"), forms.WithTextFill("#fff"),
					forms.WithValue("Sign in")), 16, 16)
			},
		},
		{
			name: "bitmap_font", width: 220, height: 60,
			build: func(s *scene) {
				s.add(forms.NewTextField(s.m, forms.WithBitmapFont("13px fixed"), forms.WithValue("Bitmap text")), 16, 16)
			},
		},
		{
			name: "select", width: 240, height: 60,
			build: func(s *scene) {
				s.add(forms.NewSelect(s.m, regions(), forms.WithSelected("na")), 16, 16)
			},
		},
		{
			name: "select_open", width: 240, height: 120,
			build: func(s *scene) {
				sel := forms.NewSelect(s.m, regions(), forms.WithSelected("na"))
				s.add(sel, 16, 16)
				sel.Update(false)
				b := sel.Bounds()
				s.click(forms.Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2})
			},
		},
		{
			name: "select_open_above", width: 240, height: 120,
			build: func(s *scene) {
				sel := forms.NewSelect(s.m, regions(), forms.WithSelected("eu"))
				s.add(sel, 16, 80)
				sel.Update(false)
				b := sel.Bounds()
				s.click(forms.Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2})
			},
		},
	}
}
