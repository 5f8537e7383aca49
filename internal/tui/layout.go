package tui

// Rect is a pane's cell rectangle within the window. Pure data; the view
// turns it into box dimensions.
type Rect struct {
	X, Y, W, H int
}

// Layout tiles 1-4 panes into a width x height window. One pane fills the
// window; two split into halves along the first pane's split tag; three
// keep the first pane as a full half and quarter the other half; four
// tile into quadrants. Remainder cells go to the trailing halves so the
// rectangles always cover the window exactly.
func Layout(width, height int, tags []SplitTag) []Rect {
	n := len(tags)
	if n == 0 || width <= 0 || height <= 0 {
		return nil
	}

	halfW, restW := width/2, width-width/2
	halfH, restH := height/2, height-height/2

	switch n {
	case 1:
		return []Rect{{0, 0, width, height}}
	case 2:
		if tags[0] == SplitHorizontal {
			return []Rect{
				{0, 0, width, halfH},
				{0, halfH, width, restH},
			}
		}
		return []Rect{
			{0, 0, halfW, height},
			{halfW, 0, restW, height},
		}
	case 3:
		if tags[0] == SplitHorizontal {
			return []Rect{
				{0, 0, width, halfH},
				{0, halfH, halfW, restH},
				{halfW, halfH, restW, restH},
			}
		}
		return []Rect{
			{0, 0, halfW, height},
			{halfW, 0, restW, halfH},
			{halfW, halfH, restW, restH},
		}
	default:
		return []Rect{
			{0, 0, halfW, halfH},
			{halfW, 0, restW, halfH},
			{0, halfH, halfW, restH},
			{halfW, halfH, restW, restH},
		}
	}
}
