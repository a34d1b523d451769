/*
Package forms provides text field, button and select widgets drawn onto a
GPU canvas and driven by a hidden native line-edit peer.

# Overview

Each widget keeps its look in a Config (size, padding, border, background,
shadows and text style) and rasterizes its chrome and text into CPU pixel
buffers. Buffers are rebuilt only when the part of the Config they depend
on changes; a Stage collects the widgets into draw lists which a Renderer
uploads and draws.

Text editing is not done by the widgets. The focused widget hands its value,
selection and limits to a Peer, the platform's native text control or the
lineedit package, and mirrors whatever the peer reports back: the caret,
the selection highlight and the visible slice of an overlong value.

# Quick Start

	editor := lineedit.New(lineedit.WithClipboard(lineedit.SystemClipboard{}))
	m := forms.NewManager(forms.WithPeerFactory(func() forms.Peer { return editor }))
	stage := forms.NewStage(m, 800, 600)

	name := forms.NewTextField(m, forms.WithPlaceholder("Name"))
	name.SetPosition(20, 20)
	ok := forms.NewButton(m, forms.WithValue("OK"), forms.OnSubmit(func(forms.Widget) {
	    fmt.Println("hello", name.Value())
	}))
	ok.SetPosition(20, 60)
	stage.Add(name, ok)

	renderer, _ := opengl.NewRenderer(800, 600, nil)
	host := opengl.NewHost(window, m, stage, editor, renderer)

	for !window.ShouldClose() {
	    glfw.PollEvents()
	    host.Frame()
	    window.SwapBuffers()
	}

# Styling

Options are applied in order on top of DefaultConfig (or ButtonDefaults for
buttons), so later options win. WithStyle names a preset in the manager's
StyleRegistry; the preset is applied before the other options of the same
constructor or Configure call, so explicit values override it:

	m.RegisterStyle("error", forms.WithBorder(1, "#c0392b"))
	f := forms.NewTextField(m, forms.WithStyle("error"), forms.WithWidth(240))

Presets can also be loaded from TOML with Manager.LoadStyles. A table may
extend another with extends = "parent"; unknown parents and cycles are load
errors and leave the registry unchanged.

	[field]
	width = 220
	border_radius = [4]
	text = { font = "15px Go", fill = "#1d1f23" }

	[pin]
	extends = "field"
	type = "password"
	max_length = 4

Fonts use CSS shorthand, "[style] [weight] <size>px <family>". The Go fonts
are always available as "Go" and "Go Mono"; Manager.RegisterFont adds more.
WithBitmapFont selects a bitmap font registered with RegisterBitmapFont,
falling back to the built-in 7x13 "fixed" font.

Colors are CSS hex (#rgb, #rrggbb, #rrggbbaa), rgb()/rgba(), a basic
color name or "none".
Shadows are "<x>px <y>px <blur>px <color>"; the outer box shadow grows the
widget's size by its extents.

# Focus

At most one widget has focus. Clicking a widget focuses it; clicking the
stage outside every widget blurs the current one (not in a touch
environment, see WithTouchEnvironment). Losing window focus blurs too.

Tab moves to the next widget in creation order whose tab index is not -1.
Buttons default to -1 and opt in with WithTabIndex. The move happens on the
next Stage.Begin after a short delay so the peer can drop focus first.

Readonly text fields take focus but never focus the peer, so they cannot be
edited.

# Keyboard Reference

TextField (editing keys are handled by the peer, see package lineedit):

	Enter            Submit (OnSubmit)
	Tab              Move focus to the next widget
	Escape           Blur
	Ctrl/Cmd+A       Select all

Button:

	Enter, Space     Submit
	Tab              Move focus to the next widget
	Escape           Blur

Select:

	Enter, Space     Open the menu, or pick the highlighted option
	Up, Down         Select the previous or next option
	Tab              Move focus to the next widget
	Escape           Close the menu and blur

# Logging

Widgets log focus changes, texture rebuilds and peer traffic at Debug level
through the manager's logger (WithLogger). The default logger writes to
stderr and is quiet until SetVerbose(true).

# Rendering

Widgets draw textured quads into a DrawList batched by texture. Pixel
buffers are premultiplied RGBA and carry a version that changes whenever
they are repainted, so a Renderer uploads a texture only when its version
moved. Open select menus are drawn into Stage.ForegroundDrawList, which is
rendered after the main list.
*/
package forms
