package tour

// Geometry is in viewport cell coordinates, origin top-left.

type Point struct {
	X, Y int
}

type Size struct {
	W, H int
}

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Right() int   { return r.X + r.W }
func (r Rect) Bottom() int  { return r.Y + r.H }
func (r Rect) CenterX() int { return r.X + r.W/2 }
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Insets is the viewport area reserved for system chrome (header, footer).
// Placement never puts the card inside an inset.
type Insets struct {
	Top, Bottom, Left, Right int
}

// Side is where the card sits relative to its target.
type Side string

const (
	SideBelow Side = "below"
	SideAbove Side = "above"
	SideRight Side = "right"
	SideLeft  Side = "left"
)

// Placement is the chosen side plus the card's center point. The renderer
// derives the top-left corner from the card size.
type Placement struct {
	Side   Side
	Anchor Point
}

const (
	// Spacing separates the card from its target edge.
	Spacing = 2
	// EdgeMargin keeps the card off the viewport and safe-area edges.
	EdgeMargin = 1
)

// Place picks a side and anchor for the explanatory card so the card stays
// inside the safe area. Priority: below, above, right, left; when no side has
// room the card goes below anyway, clamped (best effort, never off-screen).
// When the target is unknown (ok false) the card is centered in the viewport.
func Place(target Rect, ok bool, viewport Size, insets Insets, card Size) Placement {
	safeTop := insets.Top
	safeBottom := viewport.H - insets.Bottom
	safeLeft := insets.Left
	safeRight := viewport.W - insets.Right

	if !ok {
		return Placement{
			Side: SideBelow,
			Anchor: Point{
				X: clampAnchor(viewport.W/2, safeLeft, safeRight, card.W),
				Y: clampAnchor(viewport.H/2, safeTop, safeBottom, card.H),
			},
		}
	}

	p := Placement{Side: SideBelow}
	switch {
	case safeBottom-target.Bottom()-Spacing >= card.H:
		p.Side = SideBelow
		p.Anchor.Y = target.Bottom() + Spacing + card.H/2
		p.Anchor.X = target.CenterX()
	case target.Y-safeTop-Spacing >= card.H:
		p.Side = SideAbove
		p.Anchor.Y = target.Y - Spacing - card.H/2
		p.Anchor.X = target.CenterX()
	case safeRight-target.Right()-Spacing >= card.W:
		p.Side = SideRight
		p.Anchor.X = target.Right() + Spacing + card.W/2
		p.Anchor.Y = target.CenterY()
	case safeLeft <= target.X-Spacing-card.W:
		p.Side = SideLeft
		p.Anchor.X = target.X - Spacing - card.W/2
		p.Anchor.Y = target.CenterY()
	default:
		// No side fits; crowd the target from below rather than fail.
		p.Side = SideBelow
		p.Anchor.Y = target.Bottom() + Spacing + card.H/2
		p.Anchor.X = target.CenterX()
	}

	// Every path clamps into the safe box so the result is always contained.
	p.Anchor.X = clampAnchor(p.Anchor.X, safeLeft, safeRight, card.W)
	p.Anchor.Y = clampAnchor(p.Anchor.Y, safeTop, safeBottom, card.H)
	return p
}

// TopLeft converts a center anchor to the card's top-left corner.
func (p Placement) TopLeft(card Size) Point {
	return Point{X: p.Anchor.X - card.W/2, Y: p.Anchor.Y - card.H/2}
}

// clampAnchor keeps a card of the given extent centered on v within
// [lo+EdgeMargin, hi-EdgeMargin]. If the card cannot fit, the midpoint is the
// least-bad anchor.
func clampAnchor(v, lo, hi, extent int) int {
	minV := lo + EdgeMargin + extent/2
	maxV := hi - EdgeMargin - (extent - extent/2)
	if minV > maxV {
		return (minV + maxV) / 2
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
