package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds the terminal preview dimensions in cells.
type PreviewConfig struct {
	Width  int
	Height int
}

// DefaultPreviewConfig returns a 64x18 preview, close to the frame's
// 16:9 aspect once terminal cell shape is accounted for.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  64,
		Height: 18,
	}
}

// DownsampleFrame box-averages the frame into a preview grid. Each
// cell averages its whole source region, reading Pix directly.
func DownsampleFrame(frame *image.RGBA, cfg PreviewConfig) [][]color.RGBA {
	bounds := frame.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	cellWidth := srcWidth / cfg.Width
	cellHeight := srcHeight / cfg.Height
	if cellWidth < 1 {
		cellWidth = 1
	}
	if cellHeight < 1 {
		cellHeight = 1
	}

	preview := make([][]color.RGBA, cfg.Height)
	for row := range preview {
		preview[row] = make([]color.RGBA, cfg.Width)
		for col := range preview[row] {
			srcX := col * cellWidth
			srcY := row * cellHeight

			var sumR, sumG, sumB uint32
			count := uint32(0)

			for y := srcY; y < srcY+cellHeight && y < srcHeight; y++ {
				offset := y*frame.Stride + srcX*4
				for x := srcX; x < srcX+cellWidth && x < srcWidth; x++ {
					sumR += uint32(frame.Pix[offset])
					sumG += uint32(frame.Pix[offset+1])
					sumB += uint32(frame.Pix[offset+2])
					offset += 4
					count++
				}
			}

			if count > 0 {
				preview[row][col] = color.RGBA{
					R: uint8(sumR / count),
					G: uint8(sumG / count),
					B: uint8(sumB / count),
					A: 255,
				}
			}
		}
	}

	return preview
}

// RenderPreview draws the preview grid with ANSI 24-bit background
// colors, one space per cell, inside a box border.
func RenderPreview(preview [][]color.RGBA) string {
	if len(preview) == 0 {
		return ""
	}

	var b strings.Builder
	border := strings.Repeat("─", len(preview[0]))

	b.WriteString("  Preview:\n")
	b.WriteString("  ┌" + border + "┐\n")

	for _, row := range preview {
		b.WriteString("  │")
		for _, cell := range row {
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm \x1b[0m", cell.R, cell.G, cell.B)
		}
		b.WriteString("│\n")
	}

	b.WriteString("  └" + border + "┘\n")

	return b.String()
}
