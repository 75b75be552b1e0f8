// Command msdfdemo renders a line of text from an MSDF font atlas.
//
// Prerequisites:
//
//	devbox shell              # provides Go + OpenGL/X11 headers
//	msdf-atlas-gen -font font.ttf -type msdf -format png -json font.json -imageout font.png
//	go run ./cmd/msdfdemo -font font.json -atlas font.png
//
// Press +/- to change the scale, Escape to quit.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/msdftext"
	"github.com/go-theft-auto/msdftext/backend/opengl"
)

const (
	windowWidth  = 1024
	windowHeight = 1024
	windowTitle  = "msdf text"

	defaultText = "lynx tuft frogs, dolphins abduct by proxy the ever awkward klutz, dud, dummkopf, " +
		"jinx snubnose filmgoer, orphan sgt. "

	zoomFactor = 1.1
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

type options struct {
	fontPath  string
	atlasPath string
	text      string
	x, y      float64
	scale     float64
	color     uint
	verbose   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.fontPath, "font", "textures/msdf_test2.json", "atlas metadata JSON")
	flag.StringVar(&opts.atlasPath, "atlas", "textures/msdf_test2.png", "atlas image (png, bmp, tiff, webp)")
	flag.StringVar(&opts.text, "text", defaultText, "text to render")
	flag.Float64Var(&opts.x, "x", 10, "pen origin x in pixels")
	flag.Float64Var(&opts.y, "y", windowHeight-120, "baseline y in pixels from the bottom")
	flag.Float64Var(&opts.scale, "scale", 0.8, "text scale")
	flag.UintVar(&opts.color, "color", uint(msdftext.ColorWhite), "text color, packed 0xAABBGGRR")
	flag.BoolVar(&opts.verbose, "v", false, "verbose logging")
	flag.Parse()

	msdftext.SetVerbose(opts.verbose)

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	font, err := msdftext.LoadFile(opts.fontPath)
	if err != nil {
		return err
	}
	atlasImg, err := msdftext.LoadAtlasImage(opts.atlasPath)
	if err != nil {
		return err
	}
	text := msdftext.NormalizeText(opts.text)

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

	fbw, fbh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fbw, fbh)
	if err != nil {
		return fmt.Errorf("text renderer: %w", err)
	}
	defer renderer.Delete()
	renderer.SetPxRange(font.Atlas().DistanceRange)

	texture := opengl.NewAtlasTexture(atlasImg)
	defer opengl.DeleteTexture(texture)

	inputAdapter := opengl.NewGLFWInputAdapter(window, renderer)

	x, y := float32(opts.x), float32(opts.y)
	scale := float32(opts.scale)
	color := uint32(opts.color)
	// Text keeps its distance from the top edge when the window is resized.
	topOffset := float32(fbh) - y

	buf := msdftext.AcquireVertexBuffer()
	defer msdftext.ReleaseVertexBuffer(buf)

	// Vertices are regenerated only when the scale or the window height changes.
	upload := func() error {
		verts, err := msdftext.Layout(text, x, y, scale, font, msdftext.WithColor(color))
		if err != nil {
			return err
		}
		buf.Clear()
		buf.Add(verts...)
		return renderer.Upload(buf.Floats())
	}
	if err := upload(); err != nil {
		return err
	}

	for !window.ShouldClose() {
		glfw.PollEvents()
		in := inputAdapter.Update()

		dirty := false
		if in.ZoomSteps != 0 {
			scale *= float32(math.Pow(zoomFactor, float64(in.ZoomSteps)))
			dirty = true
		}
		if in.Resized && in.Height > 0 {
			y = float32(in.Height) - topOffset
			dirty = true
		}
		if dirty {
			if err := upload(); err != nil {
				return err
			}
		}

		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := renderer.Render(texture); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
