package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/terraincognita07/healthlog/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	chartWidth      = 600
	chartHeight     = 300
	chartPadding    = 50
	chartBarWidth   = 40
	chartMinimumMax = 500.0
)

var (
	chartIntakeColor = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	chartBurnedColor = color.RGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff}
)

type ChartBar struct {
	Label  string
	Value  float64
	X      int
	Height int
	Color  color.RGBA
}

// ChartPayload is a two-bar comparison of the first intake against the first
// burn, both scaled against the largest observed value (at least 500 kcal).
type ChartPayload struct {
	Title   string
	Width   int
	Height  int
	Padding int
	Max     float64
	Bars    []ChartBar
}

func (payload ChartPayload) plotHeight() int {
	return payload.Height - 2*payload.Padding
}

func BuildChart(diet []models.DietRecord, exercise []models.ExerciseRecord) ChartPayload {
	maxValue := 0.0
	for _, record := range diet {
		maxValue = max(maxValue, finite(record.Calories))
	}
	for _, record := range exercise {
		maxValue = max(maxValue, finite(record.CaloriesBurned))
	}
	maxValue = max(maxValue, chartMinimumMax)

	payload := ChartPayload{
		Title:   "Intake vs Burned (kcal)",
		Width:   chartWidth,
		Height:  chartHeight,
		Padding: chartPadding,
		Max:     maxValue,
	}

	if len(diet) > 0 {
		payload.Bars = append(payload.Bars, payload.bar("Intake", diet[0].Calories, chartPadding+50, chartIntakeColor))
	}
	if len(exercise) > 0 {
		payload.Bars = append(payload.Bars, payload.bar("Burned", exercise[0].CaloriesBurned, chartPadding+150, chartBurnedColor))
	}
	return payload
}

func (payload ChartPayload) bar(label string, value float64, x int, fill color.RGBA) ChartBar {
	value = max(finite(value), 0)
	return ChartBar{
		Label:  label,
		Value:  value,
		X:      x,
		Height: int(value / payload.Max * float64(payload.plotHeight())),
		Color:  fill,
	}
}

// RenderChartPNG rasterizes the payload on a white canvas with black axes.
func RenderChartPNG(payload ChartPayload) ([]byte, error) {
	if payload.Width <= 0 || payload.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", payload.Width, payload.Height)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, payload.Width, payload.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	baseline := payload.Height - payload.Padding
	axis := image.NewUniform(color.Black)
	draw.Draw(canvas, image.Rect(payload.Padding, baseline-1, payload.Width-payload.Padding, baseline+1), axis, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(payload.Padding-1, payload.Padding, payload.Padding+1, baseline), axis, image.Point{}, draw.Src)

	drawChartText(canvas, payload.Title, payload.Width/2-80, 30)
	for _, bar := range payload.Bars {
		rect := image.Rect(bar.X, baseline-bar.Height, bar.X+chartBarWidth, baseline)
		draw.Draw(canvas, rect, image.NewUniform(bar.Color), image.Point{}, draw.Src)
		drawChartText(canvas, bar.Label, bar.X, baseline+25)
		drawChartText(canvas, fmt.Sprintf("%.0f", bar.Value), bar.X, baseline-bar.Height-6)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, canvas); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buffer.Bytes(), nil
}

func drawChartText(canvas draw.Image, text string, x int, y int) {
	drawer := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
