package share

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/challengely/challengely/internal/logger"
)

// Card geometry: a 340x500 point card rendered at 2x.
const (
	Width  = 680
	Height = 1000

	padding = 64
	radius  = 56
)

var (
	gradientStart = color.NRGBA{0x8B, 0x5C, 0xF6, 0xFF}
	gradientEnd   = color.NRGBA{0x22, 0xC5, 0x5E, 0xFF}
	panelColor    = color.NRGBA{0xFF, 0xFF, 0xFF, 0x33}
	textColor     = color.White
	dimTextColor  = color.NRGBA{0xFF, 0xFF, 0xFF, 0xD9}
)

// Renderer draws share cards as PNG files.
type Renderer struct {
	dir     string
	regular *truetype.Font
	bold    *truetype.Font
	log     *logger.Logger
}

// NewRenderer parses the bundled Go fonts. Cards are saved under dir.
func NewRenderer(dir string, log *logger.Logger) (*Renderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{dir: dir, regular: regular, bold: bold, log: log.With("component", "share")}, nil
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Render draws the card and returns the encoded PNG.
func (r *Renderer) Render(c Card) ([]byte, error) {
	dc := gg.NewContext(Width, Height)

	// Rounded gradient background.
	grad := gg.NewLinearGradient(0, 0, Width, Height)
	grad.AddColorStop(0, gradientStart)
	grad.AddColorStop(1, gradientEnd)
	dc.DrawRoundedRectangle(0, 0, Width, Height, radius)
	dc.SetFillStyle(grad)
	dc.Fill()

	// The Go fonts carry no emoji glyphs, so the banner drops the flame.
	dc.SetFontFace(face(r.bold, 60))
	dc.SetColor(textColor)
	dc.DrawStringAnchored(fmt.Sprintf("Day %d Streak!", c.Streak), Width/2, 170, 0.5, 0.5)

	// Frosted panel with the challenge.
	panelTop := 280.0
	panelHeight := 420.0
	dc.DrawRoundedRectangle(padding, panelTop, Width-2*padding, panelHeight, 36)
	dc.SetColor(panelColor)
	dc.Fill()

	textWidth := float64(Width - 4*padding)
	dc.SetFontFace(face(r.bold, 44))
	dc.SetColor(textColor)
	dc.DrawStringWrapped(c.Title, Width/2, panelTop+48, 0.5, 0, textWidth, 1.3, gg.AlignCenter)

	dc.SetFontFace(face(r.regular, 30))
	dc.SetColor(dimTextColor)
	dc.DrawStringWrapped(c.Description, Width/2, panelTop+180, 0.5, 0, textWidth, 1.5, gg.AlignCenter)

	// Footer.
	dc.SetFontFace(face(r.bold, 32))
	dc.SetColor(dimTextColor)
	footer := "Challengely"
	if c.Category != "" {
		footer = c.Category.DisplayName() + "  ·  " + footer
	}
	dc.DrawStringAnchored(footer, Width/2, Height-96, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders the card into the output directory and returns its path.
func (r *Renderer) Save(c Card) (string, error) {
	png, err := r.Render(c)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create share dir: %w", err)
	}
	path := filepath.Join(r.dir, c.FileName())
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write share card: %w", err)
	}
	r.log.Info("share card saved", "path", path)
	return path, nil
}
