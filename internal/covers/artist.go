package covers

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
)

const (
	defaultWidth  = 1200
	defaultHeight = 630

	// treeEntropyThreshold gates the fractal flourish: only sufficiently
	// varied vocabulary earns a tree.
	treeEntropyThreshold = 5.0

	titleFontSize   = 52
	taglineFontSize = 18
	titleColor      = "#2C3E50"
	taglineColor    = "#546E7A"
)

// Artist renders a Visual into an image. All randomness comes from the
// visual's seed, so rendering is reproducible.
type Artist struct {
	width    int
	height   int
	title    string
	tagline  string
	fontPath string
}

// ArtistOption configures an Artist.
type ArtistOption func(*Artist)

// WithSize overrides the default 1200x630 canvas.
func WithSize(width, height int) ArtistOption {
	return func(a *Artist) {
		if width > 0 {
			a.width = width
		}
		if height > 0 {
			a.height = height
		}
	}
}

// WithOverlay sets the title and tagline painted over the art. Empty
// strings disable the overlay.
func WithOverlay(title, tagline string) ArtistOption {
	return func(a *Artist) {
		a.title = title
		a.tagline = tagline
	}
}

// WithFontPath points the overlay at a TTF file. Without it the overlay
// falls back to the built-in face.
func WithFontPath(path string) ArtistOption {
	return func(a *Artist) {
		a.fontPath = path
	}
}

// NewArtist builds an Artist with the standard social-card canvas.
func NewArtist(opts ...ArtistOption) *Artist {
	a := &Artist{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Render paints the visual onto a fresh canvas and returns the image.
func (a *Artist) Render(v Visual) (image.Image, error) {
	dc := gg.NewContext(a.width, a.height)
	rng := rand.New(rand.NewSource(v.Seed))

	dc.SetHexColor(v.Background)
	dc.Clear()

	switch v.Style {
	case StyleGeometric:
		a.drawGeometric(dc, rng, v)
	case StyleOrganic:
		a.drawOrganic(dc, rng, v)
	default:
		a.drawMixed(dc, rng, v)
	}

	if v.Entropy > treeEntropyThreshold {
		a.drawTree(dc, float64(a.width)/2, float64(a.height), 90, v.Layers, 100, v.Stroke, v)
	}

	if err := a.drawOverlay(dc); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// drawGeometric scatters filled rectangles, circles and regular polygons.
func (a *Artist) drawGeometric(dc *gg.Context, rng *rand.Rand, v Visual) {
	alpha := 0.5 + v.Brightness*0.2
	for i := 0; i < v.Complexity; i++ {
		x := rng.Float64() * float64(a.width)
		y := rng.Float64() * float64(a.height)
		size := rng.Float64()*100 + 50
		color := v.Palette[i%len(v.Palette)]

		switch rng.Intn(3) {
		case 0:
			dc.DrawRectangle(x, y, size, size*0.6)
		case 1:
			dc.DrawCircle(x, y, size/2)
		default:
			sides := 5 + rng.Intn(4)
			dc.DrawRegularPolygon(sides, x, y, size/2, 0)
		}
		setHexAlpha(dc, color, alpha)
		dc.FillPreserve()
		dc.SetLineWidth(v.Stroke)
		dc.Stroke()
	}
}

// drawOrganic strokes layered cubic curves with random control points.
func (a *Artist) drawOrganic(dc *gg.Context, rng *rand.Rand, v Visual) {
	alpha := 0.6 + v.Brightness*0.2
	for i := 0; i < v.Layers; i++ {
		x0, y0 := rng.Float64()*float64(a.width), rng.Float64()*float64(a.height)
		x1, y1 := rng.Float64()*float64(a.width), rng.Float64()*float64(a.height)
		x2, y2 := rng.Float64()*float64(a.width), rng.Float64()*float64(a.height)
		x3, y3 := rng.Float64()*float64(a.width), rng.Float64()*float64(a.height)

		dc.MoveTo(x0, y0)
		dc.CubicTo(x1, y1, x2, y2, x3, y3)
		setHexAlpha(dc, v.Palette[i%len(v.Palette)], alpha)
		dc.SetLineWidth(v.Stroke)
		dc.Stroke()
	}
}

// drawMixed combines scattered circles with concentric ellipses.
func (a *Artist) drawMixed(dc *gg.Context, rng *rand.Rand, v Visual) {
	for i := 0; i < v.Complexity/2; i++ {
		x := rng.Float64() * float64(a.width)
		y := rng.Float64() * float64(a.height)
		size := rng.Float64()*80 + 40

		dc.DrawCircle(x, y, size/2)
		setHexAlpha(dc, v.Palette[i%len(v.Palette)], 0.5)
		dc.FillPreserve()
		dc.SetLineWidth(2)
		dc.Stroke()
	}

	cx := float64(a.width) / 2
	cy := float64(a.height) / 2
	for i := 0; i < v.Complexity/2; i++ {
		rx := rng.Float64() * 200
		ry := rng.Float64() * 150

		dc.DrawEllipse(cx, cy, rx, ry)
		setHexAlpha(dc, v.Palette[i%len(v.Palette)], 0.7)
		dc.SetLineWidth(1.5)
		dc.Stroke()
	}
}

// drawTree grows a binary fractal tree from the bottom edge. Branch length
// and thickness decay by 0.7 per level and each level cycles the palette.
func (a *Artist) drawTree(dc *gg.Context, x, y, angle float64, depth int, length, thickness float64, v Visual) {
	if depth == 0 {
		return
	}

	x2 := x + length*math.Cos(gg.Radians(angle))
	y2 := y - length*math.Sin(gg.Radians(angle))

	setHexAlpha(dc, v.Palette[depth%len(v.Palette)], 0.6+v.Brightness*0.3)
	dc.SetLineWidth(thickness)
	dc.DrawLine(x, y, x2, y2)
	dc.Stroke()

	a.drawTree(dc, x2, y2, angle-25, depth-1, length*0.7, thickness*0.7, v)
	a.drawTree(dc, x2, y2, angle+25, depth-1, length*0.7, thickness*0.7, v)
}

// drawOverlay paints the site title and tagline in the top-left corner over
// a translucent white backdrop.
func (a *Artist) drawOverlay(dc *gg.Context) error {
	if a.title == "" && a.tagline == "" {
		return nil
	}

	dc.DrawRectangle(30, 40, 550, 140)
	dc.SetRGBA(1, 1, 1, 0.15)
	dc.Fill()

	if a.title != "" {
		if err := a.loadFace(dc, titleFontSize); err != nil {
			return err
		}
		dc.SetHexColor(titleColor)
		dc.DrawStringAnchored(a.title, 50, 50, 0, 1)
	}
	if a.tagline != "" {
		if err := a.loadFace(dc, taglineFontSize); err != nil {
			return err
		}
		dc.SetHexColor(taglineColor)
		dc.DrawStringAnchored(a.tagline, 50, 115, 0, 1)
	}
	return nil
}

func (a *Artist) loadFace(dc *gg.Context, points float64) error {
	if a.fontPath == "" {
		return nil
	}
	if err := dc.LoadFontFace(a.fontPath, points); err != nil {
		return fmt.Errorf("covers: load font %s: %w", a.fontPath, err)
	}
	return nil
}

// setHexAlpha applies a #RRGGBB color with an explicit alpha channel.
func setHexAlpha(dc *gg.Context, hex string, alpha float64) {
	r, g, b := parseHexColor(hex)
	dc.SetRGBA(r, g, b, alpha)
}

func parseHexColor(hex string) (r, g, b float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1], hex[2])) / 255,
		float64(hexByte(hex[3], hex[4])) / 255,
		float64(hexByte(hex[5], hex[6])) / 255
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}
