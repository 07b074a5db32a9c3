//go:build gl

package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/spriteedit/assets"
	"github.com/example/spriteedit/internal/editor"
	"github.com/example/spriteedit/internal/sprite"
	"github.com/example/spriteedit/internal/viewport"
)

func init() {
	// GLFW and the GL context belong to the main thread.
	runtime.LockOSThread()
}

// GLAvailable reports whether the OpenGL backend was compiled in.
const GLAvailable = true

const quadVertexShader = `#version 330 core
in vec2 position;
in vec2 uv;
uniform vec2 scale;
out vec2 texcoord;
void main() {
	texcoord = uv;
	gl_Position = vec4(position * scale, 0.0, 1.0);
}
`

const quadFragmentShader = `#version 330 core
in vec2 texcoord;
out vec4 color;
uniform sampler2D tex;
void main() {
	color = texture(tex, texcoord);
}
`

// RunGL opens a GLFW window and drives the editor with the OpenGL renderer.
// It must be called from the main goroutine.
func (a *App) RunGL(ctx context.Context) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win := a.st.Window
	if win.X <= 0 || win.Y <= 0 {
		win = editor.DefaultWindowSize
	}
	w, err := glfw.CreateWindow(win.X, win.Y, "SpriteEdit", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer w.Destroy()
	w.SetIcon(assets.Icons())
	w.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	r, err := newGLRenderer(a.theme.Background)
	if err != nil {
		return err
	}
	defer r.release()
	r.swap = w.SwapBuffers
	fbw, fbh := w.GetFramebufferSize()
	r.framebuffer = image.Pt(fbw, fbh)

	sess := a.newSession(r, win, editor.WithTitleListener(w.SetTitle))
	r.decorate = sess.decorate
	sess.open(a.file)

	// Callbacks run inside PollEvents on this thread; they only queue.
	var queue []interface{}
	dirty := true
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.framebuffer = image.Pt(width, height)
		dirty = true
	})
	w.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		sess.resize(width, height)
		dirty = true
	})
	w.SetRefreshCallback(func(*glfw.Window) { dirty = true })
	w.SetCursorPosCallback(func(gw *glfw.Window, x, y float64) {
		queue = append(queue, mouse.Event{X: float32(x), Y: float32(y), Modifiers: glfwModifiers(gw)})
	})
	w.SetMouseButtonCallback(func(gw *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		e := mouse.Event{X: float32(x), Y: float32(y), Button: glfwButton(b), Modifiers: keyModifiers(mods)}
		switch action {
		case glfw.Press:
			e.Direction = mouse.DirPress
		case glfw.Release:
			e.Direction = mouse.DirRelease
		default:
			return
		}
		queue = append(queue, e)
	})
	w.SetScrollCallback(func(gw *glfw.Window, dx, dy float64) {
		x, y := gw.GetCursorPos()
		e := mouse.Event{X: float32(x), Y: float32(y), Direction: mouse.DirStep, Modifiers: glfwModifiers(gw)}
		switch {
		case dy > 0:
			e.Button = mouse.ButtonWheelUp
		case dy < 0:
			e.Button = mouse.ButtonWheelDown
		case dx > 0:
			e.Button = mouse.ButtonWheelRight
		case dx < 0:
			e.Button = mouse.ButtonWheelLeft
		default:
			return
		}
		queue = append(queue, e)
	})
	w.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		code, ok := glfwKeys[k]
		if !ok || action != glfw.Press {
			return
		}
		queue = append(queue, key.Event{Code: code, Modifiers: keyModifiers(mods), Direction: key.DirPress})
	})

	for !w.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		glfw.WaitEventsTimeout(0.1)
		pending := queue
		queue = nil
		for _, e := range pending {
			redraw, quit := sess.input(e)
			if quit {
				return nil
			}
			dirty = dirty || redraw
		}
		if dirty {
			sess.ctrl.Handle(editor.Frame{})
			dirty = false
		}
	}
	return nil
}

var glfwKeys = map[glfw.Key]key.Code{
	glfw.KeyO:      key.CodeO,
	glfw.KeyS:      key.CodeS,
	glfw.KeyC:      key.CodeC,
	glfw.KeyV:      key.CodeV,
	glfw.KeyQ:      key.CodeQ,
	glfw.KeyEscape: key.CodeEscape,
}

func glfwButton(b glfw.MouseButton) mouse.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return mouse.ButtonLeft
	case glfw.MouseButtonRight:
		return mouse.ButtonRight
	case glfw.MouseButtonMiddle:
		return mouse.ButtonMiddle
	}
	return mouse.ButtonNone
}

func keyModifiers(mods glfw.ModifierKey) key.Modifiers {
	var out key.Modifiers
	if mods&glfw.ModShift != 0 {
		out |= key.ModShift
	}
	if mods&glfw.ModControl != 0 {
		out |= key.ModControl
	}
	if mods&glfw.ModAlt != 0 {
		out |= key.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		out |= key.ModMeta
	}
	return out
}

// glfwModifiers reads the held modifier keys for callbacks that do not
// receive them.
func glfwModifiers(w *glfw.Window) key.Modifiers {
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if w.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	var mods glfw.ModifierKey
	if held(glfw.KeyLeftShift, glfw.KeyRightShift) {
		mods |= glfw.ModShift
	}
	if held(glfw.KeyLeftControl, glfw.KeyRightControl) {
		mods |= glfw.ModControl
	}
	if held(glfw.KeyLeftAlt, glfw.KeyRightAlt) {
		mods |= glfw.ModAlt
	}
	if held(glfw.KeyLeftSuper, glfw.KeyRightSuper) {
		mods |= glfw.ModSuper
	}
	return keyModifiers(mods)
}

// glRenderer draws the sprite as a unit quad scaled in clip space. The
// sprite texture stores the canvas bytes as GL_RGB8 so dirty rectangles go
// straight from the canvas with TexSubImage2D.
type glRenderer struct {
	background  color.RGBA
	framebuffer image.Point
	window      image.Point

	program    uint32
	vao, vbo   uint32
	scaleLoc   int32
	sprite     uint32
	spriteSize image.Point

	overlay     uint32
	overlaySize image.Point
	overlayBuf  *image.RGBA

	swap     func()
	decorate func(dst *image.RGBA) []image.Rectangle
}

func newGLRenderer(background color.Color) (*glRenderer, error) {
	r := &glRenderer{background: color.RGBAModel.Convert(background).(color.RGBA)}
	program, err := linkProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, err
	}
	r.program = program
	r.scaleLoc = gl.GetUniformLocation(program, gl.Str("scale\x00"))

	// position.xy, uv.xy; v is flipped so image row 0 is at the top.
	quad := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		1, 1, 1, 0,
		-1, -1, 0, 1,
		1, 1, 1, 0,
		-1, 1, 0, 0,
	}
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	pos := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointer(pos, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	uv := uint32(gl.GetAttribLocation(program, gl.Str("uv\x00")))
	gl.EnableVertexAttribArray(uv)
	gl.VertexAttribPointer(uv, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	return r, nil
}

func newTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

func (r *glRenderer) SetViewport(width, height int) {
	r.window = image.Pt(width, height)
}

func (r *glRenderer) UploadImage(img *sprite.Image) error {
	if r.sprite == 0 {
		r.sprite = newTexture()
	}
	gl.BindTexture(gl.TEXTURE_2D, r.sprite)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(img.Width()), int32(img.Height()), 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if code := gl.GetError(); code != gl.NO_ERROR {
		r.spriteSize = image.Point{}
		return fmt.Errorf("glTexImage2D %dx%d: error 0x%x", img.Width(), img.Height(), code)
	}
	r.spriteSize = img.Size()
	return nil
}

func (r *glRenderer) UploadRegion(img *sprite.Image, rect image.Rectangle) {
	if r.sprite == 0 || r.spriteSize != img.Size() {
		if err := r.UploadImage(img); err != nil {
			log.Printf("upload: %v", err)
		}
		return
	}
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, r.sprite)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Width()))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(rect.Min.X), int32(rect.Min.Y), int32(rect.Dx()), int32(rect.Dy()),
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[img.PixOffset(rect.Min.X, rect.Min.Y)]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

func (r *glRenderer) Draw(g viewport.Geometry) {
	gl.Viewport(0, 0, int32(r.framebuffer.X), int32(r.framebuffer.Y))
	bg := r.background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	if r.sprite != 0 && g.Visible() {
		sx, sy := g.ClipScale()
		gl.Uniform2f(r.scaleLoc, float32(sx), float32(sy))
		gl.BindTexture(gl.TEXTURE_2D, r.sprite)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
	if r.decorate != nil && r.window.X > 0 && r.window.Y > 0 {
		r.drawOverlay()
	}
	if r.swap != nil {
		r.swap()
	}
}

// drawOverlay paints the chrome into a window-sized texture and blends it
// over the whole viewport.
func (r *glRenderer) drawOverlay() {
	if r.overlayBuf == nil || r.overlayBuf.Bounds().Size() != r.window {
		r.overlayBuf = image.NewRGBA(image.Rectangle{Max: r.window})
	}
	draw.Draw(r.overlayBuf, r.overlayBuf.Bounds(), image.Transparent, image.Point{}, draw.Src)
	r.decorate(r.overlayBuf)

	if r.overlay == 0 {
		r.overlay = newTexture()
	}
	gl.BindTexture(gl.TEXTURE_2D, r.overlay)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	if r.overlaySize != r.window {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(r.window.X), int32(r.window.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.overlayBuf.Pix))
		r.overlaySize = r.window
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(r.window.X), int32(r.window.Y), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.overlayBuf.Pix))
	}
	gl.Uniform2f(r.scaleLoc, 1, 1)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *glRenderer) release() {
	for _, tex := range []*uint32{&r.sprite, &r.overlay} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(msg, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(msg, "\x00"))
	}
	log.Printf("gl: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	return program, nil
}
