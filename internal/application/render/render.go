// Package render draws the play board with ebitenutil primitives.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/playbook/internal/domain/play"
)

// Screen layout: the canvas on top, a status bar below it
const (
	StatusHeight = 48
	lineHeight   = 18
	ScreenWidth  = play.CanvasWidth
	ScreenHeight = play.CanvasHeight + StatusHeight
)

var (
	colorCourt     = color.RGBA{222, 184, 135, 255}
	colorCourtLine = color.RGBA{255, 255, 255, 220}
	colorStroke    = color.RGBA{20, 20, 20, 255}
	colorCurrent   = color.RGBA{60, 60, 60, 200}
	colorTrail     = color.RGBA{255, 255, 255, 140}
	colorStatusBG  = color.RGBA{26, 26, 46, 255}
	colorRecording = color.RGBA{220, 40, 40, 255}
	colorOverlay   = color.RGBA{0, 0, 0, 160}
)

var tokenColors = map[string]color.RGBA{
	"blue":   {40, 90, 220, 255},
	"red":    {210, 40, 40, 255},
	"green":  {40, 160, 60, 255},
	"orange": {240, 140, 20, 255},
	"purple": {130, 50, 180, 255},
}

// TokenColor maps a token color name to RGBA. Unknown names render gray.
func TokenColor(name string) color.RGBA {
	if c, ok := tokenColors[name]; ok {
		return c
	}
	return color.RGBA{128, 128, 128, 255}
}

// Board draws the court, every committed stroke, the stroke in progress and
// the tokens on top.
func Board(screen *ebiten.Image, b play.Board) {
	Court(screen)
	for _, s := range b.Strokes {
		drawStroke(screen, s, colorStroke)
	}
	drawStroke(screen, b.Current, colorCurrent)
	for _, t := range b.Tokens {
		drawToken(screen, t)
	}
}

// Court draws a half court sized to the canvas
func Court(screen *ebiten.Image) {
	w, h := float64(play.CanvasWidth), float64(play.CanvasHeight)
	ebitenutil.DrawRect(screen, 0, 0, w, h, colorCourt)

	// boundary
	ebitenutil.DrawLine(screen, 1, 1, w-1, 1, colorCourtLine)
	ebitenutil.DrawLine(screen, 1, h-1, w-1, h-1, colorCourtLine)
	ebitenutil.DrawLine(screen, 1, 1, 1, h-1, colorCourtLine)
	ebitenutil.DrawLine(screen, w-1, 1, w-1, h-1, colorCourtLine)

	// paint and free throw line at the bottom baseline
	keyW, keyH := 120.0, 150.0
	keyX := (w - keyW) / 2
	ebitenutil.DrawLine(screen, keyX, h, keyX, h-keyH, colorCourtLine)
	ebitenutil.DrawLine(screen, keyX+keyW, h, keyX+keyW, h-keyH, colorCourtLine)
	ebitenutil.DrawLine(screen, keyX, h-keyH, keyX+keyW, h-keyH, colorCourtLine)

	// rim
	ebitenutil.DrawCircle(screen, w/2, h-30, 8, colorCourtLine)
	ebitenutil.DrawCircle(screen, w/2, h-30, 6, colorCourt)
}

// Trail draws the points of a drag path being replayed
func Trail(screen *ebiten.Image, path []play.PathPoint) {
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		ebitenutil.DrawLine(screen, a.X, a.Y, b.X, b.Y, colorTrail)
	}
}

// Status fills the status bar and prints up to two lines of text
func Status(screen *ebiten.Image, recording bool, lines ...string) {
	y := float64(play.CanvasHeight)
	ebitenutil.DrawRect(screen, 0, y, ScreenWidth, StatusHeight, colorStatusBG)
	x := 8
	if recording {
		ebitenutil.DrawCircle(screen, 14, y+14, 6, colorRecording)
		x = 26
	}
	for i, line := range lines {
		if i == 2 {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x, int(y)+4+i*lineHeight)
	}
}

// Prompt dims the canvas and shows the given lines centered on it
func Prompt(screen *ebiten.Image, lines ...string) {
	ebitenutil.DrawRect(screen, 0, 0, play.CanvasWidth, play.CanvasHeight, colorOverlay)
	top := play.CanvasHeight/2 - len(lines)*lineHeight/2
	for i, text := range lines {
		ebitenutil.DebugPrintAt(screen, text, play.CanvasWidth/2-len(text)*3, top+i*lineHeight)
	}
}

// drawStroke draws s about three pixels wide
func drawStroke(screen *ebiten.Image, s play.Stroke, c color.Color) {
	for i := 1; i < len(s); i++ {
		a, b := s[i-1], s[i]
		for _, o := range [...]float64{-1, 0, 1} {
			ebitenutil.DrawLine(screen, a.X+o, a.Y, b.X+o, b.Y, c)
			ebitenutil.DrawLine(screen, a.X, a.Y+o, b.X, b.Y+o, c)
		}
	}
}

func drawToken(screen *ebiten.Image, t play.Token) {
	ebitenutil.DrawCircle(screen, t.X, t.Y, play.TokenRadius, TokenColor(t.Color))
	ebitenutil.DebugPrintAt(screen, fmt.Sprint(t.ID), int(t.X)-3, int(t.Y)-8)
}
