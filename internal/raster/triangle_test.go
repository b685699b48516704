package raster

import (
	"errors"
	"math"
	"testing"

	"graphite-raster/internal/fixed"
)

type pixel struct {
	x, y int
	c    uint16
}

// recordSink keeps every emitted pixel in call order.
type recordSink struct {
	pixels []pixel
}

func (s *recordSink) DrawPixel(x, y int, c uint16) {
	s.pixels = append(s.pixels, pixel{x, y, c})
}

func (s *recordSink) at() map[[2]int]uint16 {
	m := make(map[[2]int]uint16, len(s.pixels))
	for _, p := range s.pixels {
		m[[2]int{p.x, p.y}] = p.c
	}
	return m
}

type texSample struct {
	pixel int
	u, v  fixed.Fixed
}

// probeTexture records the coordinates it is sampled at and returns white.
type probeTexture struct {
	sink    *recordSink
	samples []texSample
}

func (p *probeTexture) Sample(u, v fixed.Fixed, _, _ bool) Sample {
	// The sink has not yet seen the pixel being shaded.
	n := len(p.sink.pixels)
	p.samples = append(p.samples, texSample{pixel: n, u: u, v: v})
	return White
}

// vtx builds a vertex from floats. With z != 1 the attributes are
// pre-multiplied by z, the way a projecting driver supplies them.
func vtx(x, y, z, u, v, r, g, b, a float64) Vertex {
	return Vertex{
		X: fixed.FromFloat(x), Y: fixed.FromFloat(y), Z: fixed.FromFloat(z),
		U: fixed.FromFloat(u * z), V: fixed.FromFloat(v * z),
		R: fixed.FromFloat(r * z), G: fixed.FromFloat(g * z), B: fixed.FromFloat(b * z), A: fixed.FromFloat(a * z),
	}
}

func white(x, y, u, v float64) Vertex { return vtx(x, y, 1, u, v, 1, 1, 1, 1) }

// rightTriangle covers x+y <= 10 in the accepted winding.
func rightTriangle() (Vertex, Vertex, Vertex) {
	return white(0, 0, 0, 0), white(0, 10, 0, 1), white(10, 0, 1, 0)
}

func newTestRasterizer(t *testing.T, w, h int) (*Rasterizer, *recordSink) {
	t.Helper()
	sink := &recordSink{}
	r, err := New(w, h, sink)
	if err != nil {
		t.Fatalf("New(%d, %d) error: %v", w, h, err)
	}
	t.Cleanup(r.Dispose)
	return r, sink
}

func TestDrawTriangleRightTriangle(t *testing.T) {
	r, sink := newTestRasterizer(t, 16, 16)
	v0, v1, v2 := rightTriangle()

	n := r.DrawTriangle(v0, v1, v2, nil, DrawOptions{})
	if n != 66 {
		t.Errorf("DrawTriangle emitted %d pixels, want 66", n)
	}

	got := sink.at()
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c, ok := got[[2]int{x, y}]
			inside := x+y <= 10
			switch {
			case inside && !ok:
				t.Errorf("pixel (%d,%d) missing", x, y)
			case !inside && ok:
				t.Errorf("pixel (%d,%d) emitted outside the triangle", x, y)
			case ok && c != 0xFFFF:
				t.Errorf("pixel (%d,%d) = %#04x, want 0xffff", x, y, c)
			}
		}
	}
}

func TestDrawTriangleScanOrder(t *testing.T) {
	r, sink := newTestRasterizer(t, 16, 16)
	v0, v1, v2 := rightTriangle()
	r.DrawTriangle(v0, v1, v2, nil, DrawOptions{})

	for i := 1; i < len(sink.pixels); i++ {
		a, b := sink.pixels[i-1], sink.pixels[i]
		if a.y > b.y || (a.y == b.y && a.x >= b.x) {
			t.Fatalf("pixel %d (%d,%d) emitted after (%d,%d); want row-major order", i, b.x, b.y, a.x, a.y)
		}
	}
}

func TestDrawTriangleWindingRejected(t *testing.T) {
	r, sink := newTestRasterizer(t, 16, 16)
	v0, v1, v2 := rightTriangle()

	if a := edgeFunction(v0.point(), v1.point(), v2.point()); a <= 0 {
		t.Fatalf("area of accepted winding = %d, want > 0", a)
	}
	if a := edgeFunction(v0.point(), v2.point(), v1.point()); a >= 0 {
		t.Fatalf("area of swapped winding = %d, want < 0", a)
	}

	if n := r.DrawTriangle(v0, v2, v1, nil, DrawOptions{}); n != 0 {
		t.Errorf("reversed triangle emitted %d pixels, want 0", n)
	}
	if len(sink.pixels) != 0 {
		t.Errorf("sink received %d pixels, want 0", len(sink.pixels))
	}
}

func TestInsideAtVertices(t *testing.T) {
	tris := [][3]Vertex{
		{white(0, 0, 0, 0), white(0, 10, 0, 1), white(10, 0, 1, 0)},
		{white(2, 3, 0, 0), white(5, 14, 0, 1), white(13, 6, 1, 0)},
	}
	for _, tri := range tris {
		p0, p1, p2 := tri[0].point(), tri[1].point(), tri[2].point()
		if edgeFunction(p0, p1, p2) <= 0 {
			t.Fatalf("fixture %v has non-positive area", tri)
		}
		for i, v := range tri {
			p := v.point()
			w := [3]int64{edgeFunction(p1, p2, p), edgeFunction(p2, p0, p), edgeFunction(p0, p1, p)}
			for j := range w {
				if j != i && w[j] < 0 {
					t.Errorf("vertex %d: edge %d = %d, want >= 0", i, j, w[j])
				}
			}
		}
	}
}

func TestBarycentricPartitionOfUnity(t *testing.T) {
	tris := [][3]Vertex{
		{white(0, 0, 0, 0), white(0, 10, 0, 1), white(10, 0, 1, 0)},
		{white(1.5, 2.25, 0, 0), white(3, 14, 0, 1), white(13.75, 6, 1, 0)},
	}
	const tolerance = 4

	for _, tri := range tris {
		p0, p1, p2 := tri[0].point(), tri[1].point(), tri[2].point()
		norm := newNormalizer(edgeFunction(p0, p1, p2))
		covered := 0
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				w0, w1, w2, inside := weights(p0, p1, p2, pixelPoint(x, y), norm)
				if !inside {
					continue
				}
				covered++
				if d := w0 + w1 + w2 - fixed.One; d < -tolerance || d > tolerance {
					t.Errorf("(%d,%d): w0+w1+w2 = %d, want %d ±%d", x, y, w0+w1+w2, fixed.One, tolerance)
				}
			}
		}
		if covered == 0 {
			t.Errorf("triangle %v covered no pixels", tri)
		}
	}
}

func TestDrawTriangleQuadrantTexture(t *testing.T) {
	r, sink := newTestRasterizer(t, 16, 16)
	v0, v1, v2 := rightTriangle()
	r.DrawTriangle(v0, v1, v2, QuadrantTexture{}, DrawOptions{})

	got := sink.at()
	tests := []struct {
		name string
		x, y int
		want uint16
	}{
		{"origin is white", 0, 0, 0xFFFF},
		{"low u low v is white", 4, 4, 0xFFFF},
		{"high u is red", 9, 0, 0xFF00},
		{"just past half u is red", 6, 0, 0xFF00},
		{"high v is green", 0, 9, 0xF0F0},
		{"just past half v is green", 0, 6, 0xF0F0},
		{"both high is blue", 5, 5, 0xF00F},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := got[[2]int{tc.x, tc.y}]
			if !ok {
				t.Fatalf("pixel (%d,%d) not emitted", tc.x, tc.y)
			}
			if c != tc.want {
				t.Errorf("pixel (%d,%d) = %#04x, want %#04x", tc.x, tc.y, c, tc.want)
			}
		})
	}
}

func TestDrawTrianglePerspectiveCorrect(t *testing.T) {
	sink := &recordSink{}
	r, err := New(16, 16, sink)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()

	// The first vertex is four times nearer than the other two.
	pos := [3][2]float64{{0, 0}, {0, 12}, {12, 0}}
	zs := [3]float64{1, 0.25, 0.25}
	us := [3]float64{0, 0, 1}
	vs := [3]float64{0, 1, 0}
	v0 := vtx(pos[0][0], pos[0][1], zs[0], us[0], vs[0], 1, 1, 1, 1)
	v1 := vtx(pos[1][0], pos[1][1], zs[1], us[1], vs[1], 1, 1, 1, 1)
	v2 := vtx(pos[2][0], pos[2][1], zs[2], us[2], vs[2], 1, 1, 1, 1)

	probe := &probeTexture{sink: sink}
	r.DrawTriangle(v0, v1, v2, probe, DrawOptions{})
	if len(probe.samples) != len(sink.pixels) || len(sink.pixels) == 0 {
		t.Fatalf("sampled %d times for %d pixels", len(probe.samples), len(sink.pixels))
	}

	edge := func(a, b, c [2]float64) float64 {
		return (c[0]-a[0])*(b[1]-a[1]) - (c[1]-a[1])*(b[0]-a[0])
	}
	area := edge(pos[0], pos[1], pos[2])
	for i, s := range probe.samples {
		if s.pixel != i {
			t.Fatalf("sample %d taken for pixel %d", i, s.pixel)
		}
		px := sink.pixels[i]
		p := [2]float64{float64(px.x), float64(px.y)}
		b := [3]float64{edge(pos[1], pos[2], p) / area, edge(pos[2], pos[0], p) / area, edge(pos[0], pos[1], p) / area}
		var zSum, uSum, vSum float64
		for j := range b {
			zSum += b[j] * zs[j]
			uSum += b[j] * zs[j] * us[j]
			vSum += b[j] * zs[j] * vs[j]
		}
		wantU, wantV := uSum/zSum, vSum/zSum
		if math.Abs(s.u.Float()-wantU) > 1e-3 || math.Abs(s.v.Float()-wantV) > 1e-3 {
			t.Errorf("(%d,%d): uv = (%.4f, %.4f), want (%.4f, %.4f)", px.x, px.y, s.u.Float(), s.v.Float(), wantU, wantV)
		}
	}
}

func TestDrawTriangleDepthTest(t *testing.T) {
	near0, near1, near2 := rightTriangle()
	far := func(v Vertex) Vertex {
		return vtx(v.X.Float(), v.Y.Float(), 0.5, 0, 0, 1, 0, 0, 1)
	}
	far0, far1, far2 := far(near0), far(near1), far(near2)

	t.Run("enabled keeps nearer surface", func(t *testing.T) {
		r, sink := newTestRasterizer(t, 16, 16)
		opts := DrawOptions{DepthTest: true}
		if n := r.DrawTriangle(near0, near1, near2, nil, opts); n != 66 {
			t.Fatalf("first triangle emitted %d pixels, want 66", n)
		}
		if n := r.DrawTriangle(far0, far1, far2, nil, opts); n != 0 {
			t.Errorf("farther triangle emitted %d pixels, want 0", n)
		}
		if got := r.Depth(3, 5); got != fixed.One {
			t.Errorf("Depth(3,5) = %d, want %d", got, fixed.One)
		}
		for _, p := range sink.pixels {
			if p.c != 0xFFFF {
				t.Fatalf("pixel (%d,%d) = %#04x, want 0xffff", p.x, p.y, p.c)
			}
		}
	})

	t.Run("disabled overwrites", func(t *testing.T) {
		r, sink := newTestRasterizer(t, 16, 16)
		r.DrawTriangle(near0, near1, near2, nil, DrawOptions{DepthTest: true})
		if n := r.DrawTriangle(far0, far1, far2, nil, DrawOptions{}); n != 66 {
			t.Errorf("farther triangle emitted %d pixels, want 66", n)
		}
		if d := r.Depth(3, 5) - fixed.Half; d < -2 || d > 2 {
			t.Errorf("Depth(3,5) = %d, want %d ±2", r.Depth(3, 5), fixed.Half)
		}
		last := sink.at()
		if c := last[[2]int{3, 5}]; c != 0xFF00 {
			t.Errorf("pixel (3,5) = %#04x, want 0xff00", c)
		}
	})

	t.Run("ties do not overwrite", func(t *testing.T) {
		r, _ := newTestRasterizer(t, 16, 16)
		opts := DrawOptions{DepthTest: true}
		r.DrawTriangle(near0, near1, near2, nil, opts)
		if n := r.DrawTriangle(near0, near1, near2, QuadrantTexture{}, opts); n != 0 {
			t.Errorf("equal-depth triangle emitted %d pixels, want 0", n)
		}
	})

	t.Run("clear restores far plane", func(t *testing.T) {
		r, _ := newTestRasterizer(t, 16, 16)
		opts := DrawOptions{DepthTest: true}
		r.DrawTriangle(near0, near1, near2, nil, opts)
		r.ClearDepth()
		if got := r.Depth(3, 5); got != 0 {
			t.Errorf("Depth after ClearDepth = %d, want 0", got)
		}
		if n := r.DrawTriangle(far0, far1, far2, nil, opts); n != 66 {
			t.Errorf("after clear emitted %d pixels, want 66", n)
		}
	})
}

func TestDrawTriangleClipsToFramebuffer(t *testing.T) {
	r, sink := newTestRasterizer(t, 16, 16)

	// Covers x+y <= 25 with corners outside the buffer on every side.
	n := r.DrawTriangle(white(-5, -5, 0, 0), white(-5, 30, 0, 1), white(30, -5, 1, 0), nil, DrawOptions{DepthTest: true})
	if n != 241 {
		t.Errorf("DrawTriangle emitted %d pixels, want 241", n)
	}
	for _, p := range sink.pixels {
		if p.x < 0 || p.y < 0 || p.x >= 16 || p.y >= 16 {
			t.Fatalf("pixel (%d,%d) outside the framebuffer", p.x, p.y)
		}
	}

	if n := r.DrawTriangle(white(20, 20, 0, 0), white(20, 30, 0, 1), white(30, 20, 1, 0), nil, DrawOptions{}); n != 0 {
		t.Errorf("off-screen triangle emitted %d pixels, want 0", n)
	}
}

func TestDrawTriangleLarge(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		v0, v1, v2 Vertex
		want       int
	}{
		// x+y <= 255 over the whole buffer.
		{"fills 256x256", 256, white(0, 0, 0, 0), white(0, 255, 0, 1), white(255, 0, 1, 0), 256 * 257 / 2},
		{"far vertices", 16, white(-300, -300, 0, 0), white(-300, 900, 0, 1), white(900, -300, 1, 0), 256},
		{"extreme vertices", 16, white(-30000, -30000, 0, 0), white(-30000, 32000, 0, 1), white(32000, -30000, 1, 0), 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sink := newTestRasterizer(t, tt.size, tt.size)
			if n := r.DrawTriangle(tt.v0, tt.v1, tt.v2, nil, DrawOptions{DepthTest: true}); n != tt.want {
				t.Errorf("DrawTriangle emitted %d pixels, want %d", n, tt.want)
			}
			for _, p := range sink.pixels {
				if p.c != 0xFFFF {
					t.Fatalf("pixel (%d,%d) = %#04x, want 0xffff", p.x, p.y, p.c)
				}
			}
		})
	}
}

func TestDrawTriangleLargeTextured(t *testing.T) {
	r, sink := newTestRasterizer(t, 256, 256)
	r.DrawTriangle(white(0, 0, 0, 0), white(0, 255, 0, 1), white(255, 0, 1, 0), QuadrantTexture{}, DrawOptions{})

	got := sink.at()
	tests := []struct {
		x, y int
		want uint16
	}{
		{10, 10, 0xFFFF},
		{100, 100, 0xFFFF},
		{200, 10, 0xFF00},
		{10, 200, 0xF0F0},
	}
	for _, tt := range tests {
		if c := got[[2]int{tt.x, tt.y}]; c != tt.want {
			t.Errorf("pixel (%d,%d) = %#04x, want %#04x", tt.x, tt.y, c, tt.want)
		}
	}
}

func TestNormalizerLargeArea(t *testing.T) {
	// Doubled area of a 62000-pixel right triangle, far past int32.
	area := int64(62000) * 62000 << 16
	n := newNormalizer(area)
	if n.shift == 0 {
		t.Fatalf("shift = 0 for area %d", area)
	}
	const tolerance = 1 << 7
	tests := []struct {
		e    int64
		want fixed.Fixed
	}{
		{area, fixed.One},
		{area / 2, fixed.Half},
		{0, 0},
	}
	for _, tt := range tests {
		if got := n.weight(tt.e); got < tt.want-tolerance || got > tt.want+tolerance {
			t.Errorf("weight(%d) = %d, want %d ±%d", tt.e, got, tt.want, tolerance)
		}
	}
}

func TestDrawTriangleDegenerate(t *testing.T) {
	r, _ := newTestRasterizer(t, 16, 16)
	// Collinear points: zero area must not fault.
	r.DrawTriangle(white(0, 0, 0, 0), white(5, 5, 0, 0), white(10, 10, 0, 0), nil, DrawOptions{DepthTest: true})
}

func TestDrawTriangles(t *testing.T) {
	r, sink := newTestRasterizer(t, 16, 16)
	v0, v1, v2 := rightTriangle()
	tris := []Triangle{
		{V: [3]Vertex{v0, v1, v2}},
		{V: [3]Vertex{v0, v2, v1}},
	}
	if n := r.DrawTriangles(tris); n != 66 {
		t.Errorf("DrawTriangles emitted %d pixels, want 66", n)
	}
	if len(sink.pixels) != 66 {
		t.Errorf("sink received %d pixels, want 66", len(sink.pixels))
	}
}

func TestNew(t *testing.T) {
	sink := PixelSinkFunc(func(int, int, uint16) {})
	tests := []struct {
		name    string
		w, h    int
		sink    PixelSink
		wantErr error
	}{
		{"valid", 16, 16, sink, nil},
		{"zero width", 0, 16, sink, ErrInvalidSize},
		{"negative height", 16, -1, sink, ErrInvalidSize},
		{"nil sink", 16, 16, nil, ErrNilSink},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(tc.w, tc.h, tc.sink)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("New error = %v, want %v", err, tc.wantErr)
			}
			if err == nil {
				if w, h := r.Size(); w != tc.w || h != tc.h {
					t.Errorf("Size() = %d×%d, want %d×%d", w, h, tc.w, tc.h)
				}
			}
		})
	}
}

func expectPanic(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		got := recover()
		err, ok := got.(error)
		if !ok || !errors.Is(err, want) {
			t.Errorf("panic = %v, want %v", got, want)
		}
	}()
	f()
}

func TestLifecycleViolations(t *testing.T) {
	v0, v1, v2 := rightTriangle()

	t.Run("zero value", func(t *testing.T) {
		var r Rasterizer
		expectPanic(t, ErrNotInitialized, func() { r.DrawTriangle(v0, v1, v2, nil, DrawOptions{}) })
	})

	t.Run("nil pointer", func(t *testing.T) {
		var r *Rasterizer
		expectPanic(t, ErrNotInitialized, func() { r.ClearDepth() })
	})

	t.Run("after dispose", func(t *testing.T) {
		r, err := New(16, 16, PixelSinkFunc(func(int, int, uint16) {}))
		if err != nil {
			t.Fatal(err)
		}
		r.Dispose()
		r.Dispose()
		expectPanic(t, ErrDisposed, func() { r.DrawTriangle(v0, v1, v2, nil, DrawOptions{}) })
		expectPanic(t, ErrDisposed, func() { r.ClearDepth() })
	})
}
