package world

import "image/color"

// TreeType indexes the tree/shrub sprite catalog.
type TreeType uint8

const (
	TreeLargeLightGreen TreeType = iota
	TreeSmallLightGreen
	TreeLargeDarkGreen
	TreeSmallDarkGreen
	TreeLargeYellow
	TreeSmallYellow
	TreeLargeRed
	TreeSmallRed
	ShrubLargeOrange
	ShrubSmallOrange
	ShrubLargeGreen
	ShrubSmallGreen

	TreeTypeCount = 12
)

// SizeClass is the sprite footprint in atlas cells.
type SizeClass struct {
	Width  int
	Height int
}

// TreeAppearance captures how a catalog entry is drawn.
type TreeAppearance struct {
	Name  string
	Size  SizeClass
	Color color.NRGBA
}

var (
	treeSize  = SizeClass{Width: 1, Height: 2}
	shrubSize = SizeClass{Width: 1, Height: 1}
)

// TreeCatalog enumerates the built-in vegetation sprites.
var TreeCatalog = [TreeTypeCount]TreeAppearance{
	TreeLargeLightGreen: {Name: "large light green tree", Size: treeSize, Color: color.NRGBA{R: 110, G: 190, B: 70, A: 255}},
	TreeSmallLightGreen: {Name: "small light green tree", Size: treeSize, Color: color.NRGBA{R: 130, G: 205, B: 90, A: 255}},
	TreeLargeDarkGreen:  {Name: "large dark green tree", Size: treeSize, Color: color.NRGBA{R: 40, G: 110, B: 50, A: 255}},
	TreeSmallDarkGreen:  {Name: "small dark green tree", Size: treeSize, Color: color.NRGBA{R: 55, G: 125, B: 60, A: 255}},
	TreeLargeYellow:     {Name: "large yellow tree", Size: treeSize, Color: color.NRGBA{R: 220, G: 200, B: 70, A: 255}},
	TreeSmallYellow:     {Name: "small yellow tree", Size: treeSize, Color: color.NRGBA{R: 230, G: 210, B: 90, A: 255}},
	TreeLargeRed:        {Name: "large red tree", Size: treeSize, Color: color.NRGBA{R: 190, G: 60, B: 50, A: 255}},
	TreeSmallRed:        {Name: "small red tree", Size: treeSize, Color: color.NRGBA{R: 205, G: 80, B: 65, A: 255}},
	ShrubLargeOrange:    {Name: "large orange shrub", Size: shrubSize, Color: color.NRGBA{R: 225, G: 130, B: 40, A: 255}},
	ShrubSmallOrange:    {Name: "small orange shrub", Size: shrubSize, Color: color.NRGBA{R: 240, G: 150, B: 60, A: 255}},
	ShrubLargeGreen:     {Name: "large green shrub", Size: shrubSize, Color: color.NRGBA{R: 70, G: 150, B: 60, A: 255}},
	ShrubSmallGreen:     {Name: "small green shrub", Size: shrubSize, Color: color.NRGBA{R: 90, G: 165, B: 75, A: 255}},
}

func (t TreeType) Appearance() TreeAppearance {
	if int(t) >= TreeTypeCount {
		return TreeAppearance{Name: "unknown", Size: shrubSize, Color: color.NRGBA{R: 255, G: 0, B: 255, A: 255}}
	}
	return TreeCatalog[t]
}

func (t TreeType) String() string { return t.Appearance().Name }

// CornerColors maps terrain classes to flat preview colours.
var CornerColors = map[Corner]color.NRGBA{
	CornerWater: {R: 50, G: 110, B: 200, A: 255},
	CornerGrass: {R: 93, G: 155, B: 61, A: 255},
	CornerDirt:  {R: 139, G: 90, B: 43, A: 255},
}

var grassVariantColors = map[uint8]color.NRGBA{
	TileGrassVariantA: {R: 104, G: 165, B: 66, A: 255},
	TileGrassVariantB: {R: 84, G: 145, B: 58, A: 255},
}
