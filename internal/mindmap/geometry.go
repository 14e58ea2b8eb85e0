package mindmap

// Canvas constants. The width is fixed; the height is derived per build from
// the weighted column spans.
const (
	CanvasWidth = 1240
	MinHeight   = 720
	MarginY     = 140

	CategoryGap = 260
	GroupGap    = 200
	ItemGap     = 320

	BaseSpacing = 120
	ItemSpacing = 72
)

// Root label shown at the canvas center.
const RootLabel = "AI Compass"

// Pill paddings and the service icon slot, per style class.
const (
	rootPadX = 38
	rootPadY = 26

	categoryPadX = 28
	categoryPadY = 20

	groupPadX = 24
	groupPadY = 16

	servicePadX = 26
	servicePadY = 16

	defaultPadX = 18
	defaultPadY = 12

	IconSize = 32
	IconGap  = 12
)

// Side is the horizontal half of the canvas a category is assigned to.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// sign returns the horizontal direction of the side: +1 right, -1 left.
func (s Side) sign() float64 {
	if s == SideLeft {
		return -1
	}
	return 1
}
