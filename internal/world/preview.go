package world

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

const (
	previewTileSize = 8 // pixels per tile edge
	previewTreeSize = 4
)

var previewBackground = color.NRGBA{R: 10, G: 10, B: 18, A: 255}

// SaveChunkPreview renders a top-down PNG of a chunk's ground tiles and
// vegetation to outputDir/chunk_<i>_<j>.png. World +Y points up in the image.
func SaveChunkPreview(chunk *Chunk, outputDir string) error {
	if chunk == nil {
		return fmt.Errorf("chunk is nil")
	}
	b := chunk.Bounds
	if b.Width() <= 0 || b.Height() <= 0 {
		return fmt.Errorf("invalid chunk bounds: %+v", b)
	}
	if len(chunk.Ground) != b.Width()*b.Height() {
		return fmt.Errorf("chunk %v ground has %d tiles, want %d", chunk.Key, len(chunk.Ground), b.Width()*b.Height())
	}

	img := image.NewNRGBA(image.Rect(0, 0, b.Width()*previewTileSize, b.Height()*previewTileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{previewBackground}, image.Point{}, draw.Src)

	// Row 0 and column 0 carry no tile.
	for y := b.Bottom + 1; y < b.Top; y++ {
		for x := b.Left + 1; x < b.Right; x++ {
			renderTilePreview(img, b, x, y, chunk.Ground[b.Index(x, y)])
		}
	}
	for _, tree := range chunk.Trees {
		renderTreePreview(img, b, tree)
	}

	if err := ensurePreviewDir(outputDir); err != nil {
		return err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("chunk_%d_%d.png", chunk.Key.I, chunk.Key.J))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

// renderTilePreview paints the tile covering (x-1, y-1)..(x, y) as four
// quadrants, one per corner class.
func renderTilePreview(img *image.NRGBA, b Rect, x, y int, id uint8) {
	px := (x - 1 - b.Left) * previewTileSize
	py := (b.Top - y) * previewTileSize
	half := previewTileSize / 2

	if variant, ok := grassVariantColors[id]; ok {
		fillRect(img, image.Rect(px, py, px+previewTileSize, py+previewTileSize), variant)
		return
	}
	tl, tr, bl, br := TileCorners(id)
	fillRect(img, image.Rect(px, py, px+half, py+half), CornerColors[tl])
	fillRect(img, image.Rect(px+half, py, px+previewTileSize, py+half), CornerColors[tr])
	fillRect(img, image.Rect(px, py+half, px+half, py+previewTileSize), CornerColors[bl])
	fillRect(img, image.Rect(px+half, py+half, px+previewTileSize, py+previewTileSize), CornerColors[br])
}

func renderTreePreview(img *image.NRGBA, b Rect, tree Tree) {
	cx := int((tree.Position.X() - float32(b.Left)) * previewTileSize)
	cy := int((float32(b.Top) - tree.Position.Y()) * previewTileSize)
	r := previewTreeSize / 2
	fillRect(img, image.Rect(cx-r, cy-r, cx+r, cy+r).Intersect(img.Bounds()), tree.Type.Appearance().Color)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

func ensurePreviewDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("preview directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preview dir: %w", err)
	}
	return nil
}
