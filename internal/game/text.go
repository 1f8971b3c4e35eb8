package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// fonts holds the Go Mono faces used for the HUD and the screen banners.
type fonts struct {
	hud    *text.GoTextFace
	banner *text.GoTextFace
	small  *text.GoTextFace
}

func loadFonts() (*fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}
	return &fonts{
		hud:    &text.GoTextFace{Source: src, Size: 16},
		banner: &text.GoTextFace{Source: src, Size: 56},
		small:  &text.GoTextFace{Source: src, Size: 13},
	}, nil
}

func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// drawCentered draws s with its top edge at y, centred on cx.
func drawCentered(dst *ebiten.Image, s string, face text.Face, cx, y float64, clr color.Color) {
	w, _ := text.Measure(s, face, 0)
	drawText(dst, s, face, cx-w/2, y, clr)
}
