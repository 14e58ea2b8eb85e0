package mindmap

import "github.com/mattn/go-runewidth"

// Class selects the text style a label is measured with.
type Class string

const (
	ClassLarge  Class = "large"
	ClassNormal Class = "normal"
	ClassSmall  Class = "small"
)

// Size is the rendered footprint of a label in canvas units.
type Size struct {
	W float64
	H float64
}

// Measurer reports the rendered footprint of a label for a style class.
// Measurement is treated as expensive; callers go through SizeCache.
type Measurer interface {
	Measure(label string, class Class) Size
}

// classMetrics approximates the SVG font metrics of each style class.
type classMetrics struct {
	cellWidth  float64
	lineHeight float64
}

var metrics = map[Class]classMetrics{
	ClassLarge:  {cellWidth: 12, lineHeight: 24},
	ClassNormal: {cellWidth: 9, lineHeight: 18},
	ClassSmall:  {cellWidth: 8, lineHeight: 16},
}

// CellMeasurer derives label footprints from terminal cell widths. Wide
// (CJK and similar) runes count double, which keeps mixed-script labels from
// overflowing their pills.
type CellMeasurer struct{}

// Measure implements Measurer.
func (CellMeasurer) Measure(label string, class Class) Size {
	m, ok := metrics[class]
	if !ok {
		m = metrics[ClassNormal]
	}
	cells := runewidth.StringWidth(label)
	return Size{W: float64(cells) * m.cellWidth, H: m.lineHeight}
}

type sizeKey struct {
	label string
	class Class
}

// SizeCache memoizes measurements by (label, class) for the lifetime of one
// canvas instance. It grows without bound on purpose; the catalog is small
// and the cache dies with the instance.
type SizeCache struct {
	measurer Measurer
	entries  map[sizeKey]Size
}

// NewSizeCache wraps a measurer. A nil measurer falls back to CellMeasurer.
func NewSizeCache(m Measurer) *SizeCache {
	if m == nil {
		m = CellMeasurer{}
	}
	return &SizeCache{measurer: m, entries: make(map[sizeKey]Size)}
}

// Measure returns the memoized footprint, measuring on the first request.
func (c *SizeCache) Measure(label string, class Class) Size {
	key := sizeKey{label: label, class: class}
	if size, ok := c.entries[key]; ok {
		return size
	}
	size := c.measurer.Measure(label, class)
	c.entries[key] = size
	return size
}

// Len reports the number of cached measurements.
func (c *SizeCache) Len() int {
	return len(c.entries)
}
