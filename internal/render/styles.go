package render

// BlockStyle captures the paragraph formatting applied per block kind.
// Sizes and spacing are in points.
type BlockStyle struct {
	Font        string
	Bold        bool
	Size        float64
	Leading     float64
	SpaceBefore float64
	SpaceAfter  float64
	Indent      float64
	Color       [3]int
}

const (
	PageSize     = "Letter"
	MarginLeft   = 72.0
	MarginRight  = 72.0
	MarginTop    = 72.0
	MarginBottom = 18.0

	SpacerHeight = 6.0
	bodyFont     = "Helvetica"
)

// SectionColor is #2E4057.
var SectionColor = [3]int{0x2E, 0x40, 0x57}

// StyleMap centralizes the formatting for every non-spacer block kind.
var StyleMap = map[BlockKind]BlockStyle{
	KindSection: {
		Font:        bodyFont,
		Bold:        true,
		Size:        14,
		Leading:     16.8,
		SpaceBefore: 20,
		SpaceAfter:  12,
		Color:       SectionColor,
	},
	KindEntry: {
		Font:        bodyFont,
		Bold:        true,
		Size:        12,
		Leading:     14.4,
		SpaceBefore: 12,
		SpaceAfter:  8,
	},
	KindBody: {
		Font:       bodyFont,
		Size:       10,
		Leading:    12,
		SpaceAfter: 6,
	},
	KindItem: {
		Font:       bodyFont,
		Size:       10,
		Leading:    12,
		SpaceAfter: 4,
		Indent:     20,
	},
}
