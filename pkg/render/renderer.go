// Package render drives a flycam camera from GLFW input and draws a lit grid
// of cubes to fly around in.
package render

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/flycam/internal/openglhelper"
	"github.com/leterax/flycam/pkg/camera"
	"github.com/leterax/flycam/pkg/input"
	"github.com/leterax/flycam/pkg/replay"
)

// Options configures a Renderer
type Options struct {
	Width  int
	Height int
	Title  string
	VSync  bool

	Camera camera.Config
	Mode   input.Mode
	Target mgl32.Vec3 // orbit target

	// Record receives the starting configuration and every applied input
	// frame when set
	Record io.Writer
	// Replay drives the camera instead of live input until it runs out. The
	// camera starts from the recording's configuration instead of Camera.
	Replay io.Reader
	// Tuning delivers reloaded camera configurations
	Tuning <-chan camera.Config
}

// ErrRecordWhileReplaying is returned when both Record and Replay are set
var ErrRecordWhileReplaying = errors.New("cannot record while replaying")

// cubeInstance is one cube of the demo scene
type cubeInstance struct {
	model mgl32.Mat4
	color mgl32.Vec3
}

// Renderer handles rendering logic and game loop
type Renderer struct {
	window     *openglhelper.Window
	camera     *camera.Camera
	controller *input.Controller
	keys       input.KeyState

	cubeShader *openglhelper.Shader
	cubeMesh   *openglhelper.Mesh
	cubes      []cubeInstance

	// Timing
	lastFrameTime float64
	deltaTime     float32

	recorder *replay.Writer
	player   *replay.Reader
	tuning   <-chan camera.Config
}

// NewRenderer creates the window, the camera and the demo scene
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Record != nil && opts.Replay != nil {
		return nil, ErrRecordWhileReplaying
	}

	cfg := opts.Camera
	var player *replay.Reader
	if opts.Replay != nil {
		var err error
		player, err = replay.NewReader(opts.Replay)
		if err != nil {
			return nil, fmt.Errorf("failed to open replay: %w", err)
		}
		cfg = player.Start()
	}

	window, err := openglhelper.NewWindow(opts.Width, opts.Height, opts.Title, opts.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	cam := cfg.NewCamera()
	controller := input.NewController(cam)
	controller.SetMode(opts.Mode)
	controller.SetTarget(opts.Target)

	renderer := &Renderer{
		window:     window,
		camera:     cam,
		controller: controller,
		player:     player,
		tuning:     opts.Tuning,
	}
	renderer.keys = input.KeyStateFunc(renderer.actionPressed)

	if opts.Record != nil {
		renderer.recorder, err = replay.NewWriter(opts.Record, cfg)
		if err != nil {
			window.Close()
			return nil, fmt.Errorf("failed to start recording: %w", err)
		}
	}

	// Set up callbacks
	window.GLFWWindow().SetKeyCallback(renderer.keyCallback)
	window.GLFWWindow().SetCursorPosCallback(renderer.cursorPosCallback)
	window.GLFWWindow().SetScrollCallback(renderer.scrollCallback)
	window.GLFWWindow().SetFramebufferSizeCallback(renderer.framebufferSizeCallback)

	shader, err := openglhelper.NewShader(cubeVertexShader, cubeFragmentShader)
	if err != nil {
		// Cleanup also flushes the recording started above
		if cerr := renderer.Cleanup(); cerr != nil {
			log.Printf("cleanup after failed setup: %v", cerr)
		}
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}
	renderer.cubeShader = shader
	renderer.cubeMesh = openglhelper.NewCube()
	renderer.cubes = buildScene(opts.Target)

	renderer.lastFrameTime = glfw.GetTime()

	return renderer, nil
}

// buildScene lays out a grid of pillars around the origin and a marker at the orbit target
func buildScene(target mgl32.Vec3) []cubeInstance {
	cubes := make([]cubeInstance, 0, GridSize*GridSize+1)
	half := float32(GridSize-1) / 2

	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			x := (float32(i) - half) * GridSpacing
			z := (float32(j) - half) * GridSpacing
			height := 1 + float32((i*7+j*3)%5)

			model := mgl32.Translate3D(x, height/2-1, z).Mul4(mgl32.Scale3D(1, height, 1))
			color := mgl32.Vec3{
				0.3 + 0.7*float32(i)/float32(GridSize-1),
				0.5,
				0.3 + 0.7*float32(j)/float32(GridSize-1),
			}
			cubes = append(cubes, cubeInstance{model: model, color: color})
		}
	}

	marker := mgl32.Translate3D(target.X(), target.Y(), target.Z()).Mul4(mgl32.Scale3D(0.3, 0.3, 0.3))
	cubes = append(cubes, cubeInstance{model: marker, color: mgl32.Vec3{1, 0.2, 0.2}})

	return cubes
}

// Camera returns the camera driven by the renderer
func (r *Renderer) Camera() *camera.Camera {
	return r.camera
}

func (r *Renderer) actionPressed(a input.Action) bool {
	key, ok := KeyBindings[a]
	return ok && r.window.GetKeyState(key) != Release
}

// SetTuning applies reloaded speed, sensitivity and zoom with the next
// input frame, so recordings carry the change
func (r *Renderer) SetTuning(cfg camera.Config) {
	r.controller.Tune(cfg)
	log.Printf("camera tuning reloaded: speed %.2f sensitivity %.3f zoom %.1f",
		cfg.MovementSpeed, cfg.MouseSensitivity, cfg.Zoom)
}

// applyTuning picks up at most one reloaded configuration per frame
func (r *Renderer) applyTuning() {
	select {
	case cfg, ok := <-r.tuning:
		if !ok {
			r.tuning = nil
			return
		}
		r.SetTuning(cfg)
	default:
	}
}

// processInput advances the replay if one is playing, otherwise applies live input
func (r *Renderer) processInput() {
	if r.player != nil {
		frame, err := r.player.ReadFrame()
		if err == nil {
			replay.Apply(r.camera, frame)
			return
		}
		if errors.Is(err, io.EOF) {
			log.Println("replay finished, switching to live input")
		} else {
			log.Printf("replay stopped: %v", err)
		}
		r.player = nil
		r.controller.ResetCursor()
	}

	frame := r.controller.Update(r.keys, r.deltaTime)

	if r.recorder != nil {
		if err := r.recorder.WriteFrame(frame); err != nil {
			log.Printf("recording stopped: %v", err)
			r.recorder = nil
		}
	}
}

// render draws the scene from the camera's point of view
func (r *Renderer) render() {
	r.window.Clear(ClearColor)

	// Nothing to draw into while minimized
	if width, height := r.window.Size(); width == 0 || height == 0 {
		return
	}

	r.cubeShader.Use()
	r.cubeShader.SetMat4("view", r.camera.ViewMatrix())
	r.cubeShader.SetMat4("projection", r.camera.ProjectionMatrix(r.window.Aspect(), NearPlane, FarPlane))
	r.cubeShader.SetVec3("viewPos", r.camera.Position())
	r.cubeShader.SetVec3("lightPos", LightPos)
	r.cubeShader.SetVec3("lightColor", LightColor)
	r.cubeShader.SetFloat("ambientStrength", AmbientStrength)

	for _, cube := range r.cubes {
		r.cubeShader.SetMat4("model", cube.model)
		r.cubeShader.SetVec3("objectColor", cube.color)
		r.cubeMesh.Draw()
	}
}

// Run starts the main rendering loop and cleans up when the window closes
func (r *Renderer) Run() error {
	for !r.window.ShouldClose() {
		currentTime := glfw.GetTime()
		r.deltaTime = float32(currentTime - r.lastFrameTime)
		r.lastFrameTime = currentTime

		r.applyTuning()
		r.processInput()
		r.render()

		r.window.SwapBuffers()
		r.window.PollEvents()
	}

	return r.Cleanup()
}

// Cleanup flushes the recording and frees all resources
func (r *Renderer) Cleanup() error {
	var err error
	if r.recorder != nil {
		frames := r.recorder.Frames()
		if err = r.recorder.Close(); err == nil {
			log.Printf("recorded %d frames", frames)
		}
		r.recorder = nil
	}

	if r.cubeMesh != nil {
		r.cubeMesh.Delete()
		r.cubeMesh = nil
	}
	if r.cubeShader != nil {
		r.cubeShader.Delete()
		r.cubeShader = nil
	}

	r.window.Close()

	return err
}

// Callback functions
func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != Press {
		return
	}

	switch key {
	case KeyEscape:
		r.window.SetShouldClose(true)
	case KeyToggleLook:
		r.window.ToggleMouseCaptured()
		r.controller.ResetCursor()
	case KeyToggleMode:
		log.Printf("camera mode: %s", r.controller.ToggleMode())
	case KeyPrintInfo:
		r.camera.PrintInfo(os.Stdout)
	}
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if r.window.IsMouseCaptured() && r.player == nil {
		r.controller.CursorMoved(xpos, ypos)
	}
}

func (r *Renderer) scrollCallback(_ *glfw.Window, _, yoffset float64) {
	if r.player == nil {
		r.controller.Scrolled(yoffset)
	}
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
}
