package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"arview/xr"
)

// BuiltinCube is the asset ref resolved without touching the filesystem.
const BuiltinCube = "builtin:cube"

// Provider loads wireframe meshes asynchronously. A source ref is either the
// builtin cube, or a path to a minimal OBJ file (v/f/l statements).
type Provider struct {
	sc      *scene
	latency time.Duration
	log     *zap.Logger
}

// NewProvider returns a provider attaching meshes to sc.
func NewProvider(sc *scene, latency time.Duration, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{sc: sc, latency: latency, log: log}
}

// Load resolves src on its own goroutine and calls exactly one of ready or
// failed.
func (p *Provider) Load(src xr.AssetSource, ready func(xr.Renderable), failed func(error)) {
	go func() {
		if p.latency > 0 {
			time.Sleep(p.latency)
		}
		verts, edges, err := loadGeometry(src.Ref)
		if err != nil {
			p.log.Warn("asset load failed", zap.String("ref", src.Ref), zap.Error(err))
			failed(err)
			return
		}
		ready(newMesh(p.sc, verts, edges))
	}()
}

func loadGeometry(ref string) ([]mgl32.Vec3, [][2]int, error) {
	if ref == "" || ref == BuiltinCube {
		verts, edges := cubeMesh()
		return verts, edges, nil
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()
	return parseOBJ(f)
}

// cubeMesh is a unit cube resting on y = 0.
func cubeMesh() ([]mgl32.Vec3, [][2]int) {
	verts := []mgl32.Vec3{
		{-0.5, 0, -0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}, {-0.5, 0, 0.5},
		{-0.5, 1, -0.5}, {0.5, 1, -0.5}, {0.5, 1, 0.5}, {-0.5, 1, 0.5},
	}
	edges := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	return verts, edges
}

// parseOBJ reads the subset of Wavefront OBJ the wireframe renderer needs:
// v vertices, f faces (any arity, slash attributes ignored), l polylines.
func parseOBJ(r io.Reader) ([]mgl32.Vec3, [][2]int, error) {
	var verts []mgl32.Vec3
	edgeSet := make(map[[2]int]struct{})

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: short vertex", line)
			}
			var v mgl32.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: vertex coordinate: %w", line, err)
				}
				v[i] = float32(f)
			}
			verts = append(verts, v)
		case "f", "l":
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				// Only the vertex index of a/b/c attribute triples matters.
				if cut := strings.IndexByte(tok, '/'); cut >= 0 {
					tok = tok[:cut]
				}
				n, err := strconv.Atoi(tok)
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: index: %w", line, err)
				}
				if n < 0 {
					n = len(verts) + 1 + n // negative indices count from the end
				}
				if n < 1 || n > len(verts) {
					return nil, nil, fmt.Errorf("line %d: index %d out of range", line, n)
				}
				idx = append(idx, n-1)
			}
			closeLoop := fields[0] == "f" && len(idx) > 2
			for i := 0; i+1 < len(idx); i++ {
				addEdge(edgeSet, idx[i], idx[i+1])
			}
			if closeLoop {
				addEdge(edgeSet, idx[len(idx)-1], idx[0])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read asset: %w", err)
	}
	if len(verts) == 0 {
		return nil, nil, fmt.Errorf("no vertices")
	}

	edges := make([][2]int, 0, len(edgeSet))
	for e := range edgeSet {
		edges = append(edges, e)
	}
	return verts, edges, nil
}

func addEdge(set map[[2]int]struct{}, a, b int) {
	if a == b {
		return
	}
	if a > b {
		a, b = b, a
	}
	set[[2]int{a, b}] = struct{}{}
}
