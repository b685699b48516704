// Command viewer spins a mesh through the fixed-point rasterizer in a
// desktop window.
//
//	[q] quit  [s] stats  [space] rotation  [t] texture  [l] lighting
//	[m] cube/tetrahedron  [u] clamp s  [v] clamp t  [d] depth test
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"graphite-raster/internal/demo"
	"graphite-raster/internal/logging"
	"graphite-raster/internal/raster"
	"graphite-raster/internal/texture"
)

var actions = map[ebiten.Key]demo.Action{
	ebiten.KeySpace: demo.ToggleRotation,
	ebiten.KeyT:     demo.ToggleTexture,
	ebiten.KeyL:     demo.ToggleLighting,
	ebiten.KeyM:     demo.NextModel,
	ebiten.KeyU:     demo.ToggleClampS,
	ebiten.KeyV:     demo.ToggleClampT,
	ebiten.KeyD:     demo.ToggleDepthTest,
}

type game struct {
	state    demo.State
	renderer *demo.Renderer
	stats    bool
	frame    *ebiten.Image
	pixels   []byte
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, a := range actions {
		if inpututil.IsKeyJustPressed(key) {
			g.state.Apply(a)
			fmt.Println(g.state)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.stats = !g.stats
	}
	g.state.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	st := g.renderer.Render(&g.state)
	fb := g.renderer.Buffer()

	if g.frame == nil {
		g.frame = ebiten.NewImage(fb.Width, fb.Height)
		g.pixels = make([]byte, 4*fb.Width*fb.Height)
	}
	fb.RGBA(g.pixels)
	g.frame.WritePixels(g.pixels)
	screen.DrawImage(g.frame, nil)

	if g.stats {
		fmt.Printf("triangles=%d pixels=%d tps=%.1f fps=%.1f\n",
			st.Triangles, st.Pixels, ebiten.ActualTPS(), ebiten.ActualFPS())
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Buffer().Width, g.renderer.Buffer().Height
}

func main() {
	width := flag.Int("width", 128, "Framebuffer width")
	height := flag.Int("height", 128, "Framebuffer height")
	zoom := flag.Int("zoom", 4, "Window pixels per framebuffer pixel")
	texPath := flag.String("texture", "", "Image to map onto the model (default: quadrant texture)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var tex raster.Texture
	if *texPath != "" {
		img, err := texture.Load(*texPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		tex = texture.NewImage(img)
	}

	renderer, err := demo.NewRenderer(*width, *height, tex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer renderer.Close()

	fmt.Println("[q]: quit, [s]: stats, [SPACE]: rotation, [t]: texture, [l]: lighting, [m]: cube/tetra, [u]: clamp s, [v]: clamp t, [d]: depth test")

	g := &game{state: demo.NewState(), renderer: renderer}
	ebiten.SetWindowTitle("graphite-raster")
	ebiten.SetWindowSize(*width**zoom, *height**zoom)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
