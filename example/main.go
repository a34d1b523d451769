// Example shows a sign-in form: text, password, number and select inputs
// with a submit button, styled from a TOML style sheet.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/ -v      # run with debug logging
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/forms"
	"github.com/go-theft-auto/forms/backend/opengl"
	"github.com/go-theft-auto/forms/lineedit"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "forms example"
)

//go:embed styles.toml
var styleSheet string

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	glfwClipboard := flag.Bool("glfw-clipboard", false, "use the GLFW clipboard instead of the system one")
	flag.Parse()
	forms.SetVerbose(*verbose)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *glfwClipboard); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, glfwClipboard bool) error {
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

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight, logger)
	if err != nil {
		return fmt.Errorf("forms renderer: %w", err)
	}
	defer renderer.Delete()

	var clip lineedit.Clipboard = lineedit.SystemClipboard{}
	if glfwClipboard {
		clip = opengl.WindowClipboard{Window: window}
	}
	editor := lineedit.New(lineedit.WithClipboard(clip), lineedit.WithLogger(logger))
	m := forms.NewManager(forms.WithLogger(logger), forms.WithPeerFactory(func() forms.Peer { return editor }))

	if err := m.LoadStyles(strings.NewReader(styleSheet)); err != nil {
		return fmt.Errorf("load styles: %w", err)
	}

	stage := forms.NewStage(m, windowWidth, windowHeight)
	host := opengl.NewHost(window, m, stage, editor, renderer)

	buildForm(m, stage, logger)

	for !window.ShouldClose() {
		glfw.PollEvents()

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.93, 0.94, 0.95, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := host.Frame(); err != nil {
			return fmt.Errorf("forms render: %w", err)
		}

		window.SwapBuffers()
	}
	return nil
}

// buildForm lays out the widgets in a column.
func buildForm(m *forms.Manager, stage *forms.Stage, logger *slog.Logger) {
	const x = 60
	y := 60.0
	next := func(w forms.Widget) {
		w.SetPosition(x, y)
		w.Update(false)
		_, h := w.Size()
		y += h + 16
		stage.Add(w)
	}

	name := forms.NewTextField(m, forms.WithStyle("field"), forms.WithPlaceholder("User name"))
	pin := forms.NewTextField(m, forms.WithStyle("pin"), forms.WithPlaceholder("PIN"))
	age := forms.NewTextField(m, forms.WithStyle("field"),
		forms.WithType(forms.TypeNumber), forms.WithMin(0), forms.WithMax(130),
		forms.WithPlaceholder("Age"))
	region := forms.NewSelect(m, forms.WithStyle("picker"),
		forms.WithOptions(
			forms.SelectOption{Value: "eu", Text: "Europe"},
			forms.SelectOption{Value: "na", Text: "North America"},
			forms.SelectOption{Value: "sa", Text: "South America"},
			forms.SelectOption{Value: "as", Text: "Asia"},
		),
		forms.WithSelected("eu"),
	)
	status := forms.NewButton(m, forms.WithBitmapFont("13px fixed"), forms.WithWidth(300),
		forms.WithAlign(forms.AlignLeft), forms.WithBoxShadow("none"), forms.WithBorder(0, "none"),
		forms.WithBackgroundColor("transparent"), forms.WithValue("Fill in the form"))

	submit := func(forms.Widget) {
		if name.Value() == "" {
			name.Configure(forms.WithStyle("field_error"))
			status.SetValue("User name is required")
			return
		}
		name.Configure(forms.WithStyle("field"))
		msg := fmt.Sprintf("Signed in %s (%s), region %s", name.Value(), age.Value(), region.Value())
		status.SetValue(msg)
		logger.Info("form submitted", "name", name.Value(), "region", region.Value())
	}
	for _, f := range []*forms.TextField{name, pin, age} {
		f.Configure(forms.OnSubmit(submit))
	}
	button := forms.NewButton(m, forms.WithStyle("primary"), forms.WithValue("Sign in"),
		forms.WithTabIndex(0), forms.OnSubmit(submit), forms.OnMouseUp(func(_ *forms.PointerEvent, w forms.Widget) {
			submit(w)
		}))

	for _, w := range []forms.Widget{name, pin, age, region, button, status} {
		next(w)
	}
	name.Focus()
}
