package tui

import "testing"

func TestLayoutShapes(t *testing.T) {
	tests := []struct {
		name string
		tags []SplitTag
		want []Rect
	}{
		{
			name: "single pane fills window",
			tags: []SplitTag{SplitNone},
			want: []Rect{{0, 0, 80, 24}},
		},
		{
			name: "two horizontal stack vertically",
			tags: []SplitTag{SplitHorizontal, SplitHorizontal},
			want: []Rect{{0, 0, 80, 12}, {0, 12, 80, 12}},
		},
		{
			name: "two vertical sit side by side",
			tags: []SplitTag{SplitVertical, SplitVertical},
			want: []Rect{{0, 0, 40, 24}, {40, 0, 40, 24}},
		},
		{
			name: "three horizontal: full top half plus quartered bottom",
			tags: []SplitTag{SplitHorizontal, SplitHorizontal, SplitHorizontal},
			want: []Rect{{0, 0, 80, 12}, {0, 12, 40, 12}, {40, 12, 40, 12}},
		},
		{
			name: "three vertical: full left half plus quartered right",
			tags: []SplitTag{SplitVertical, SplitVertical, SplitVertical},
			want: []Rect{{0, 0, 40, 24}, {40, 0, 40, 12}, {40, 12, 40, 12}},
		},
		{
			name: "four tile as quadrants",
			tags: []SplitTag{SplitVertical, SplitVertical, SplitVertical, SplitVertical},
			want: []Rect{{0, 0, 40, 12}, {40, 0, 40, 12}, {0, 12, 40, 12}, {40, 12, 40, 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Layout(80, 24, tt.tags)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rects, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("rect %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLayoutEmpty(t *testing.T) {
	if got := Layout(80, 24, nil); got != nil {
		t.Errorf("Layout(nil tags) = %v, want nil", got)
	}
	if got := Layout(0, 24, []SplitTag{SplitNone}); got != nil {
		t.Errorf("Layout(zero width) = %v, want nil", got)
	}
}

// TestLayoutCoversExactly marks every cell each rect covers and checks the
// window is tiled with no gaps and no overlaps, including odd dimensions
// where the halves differ by one.
func TestLayoutCoversExactly(t *testing.T) {
	dims := []struct{ w, h int }{{80, 24}, {7, 5}, {1, 1}, {3, 4}}
	tagSets := [][]SplitTag{
		{SplitNone},
		{SplitHorizontal, SplitVertical},
		{SplitVertical, SplitHorizontal},
		{SplitHorizontal, SplitVertical, SplitHorizontal},
		{SplitVertical, SplitHorizontal, SplitVertical},
		{SplitHorizontal, SplitVertical, SplitHorizontal, SplitVertical},
	}

	for _, d := range dims {
		for _, tags := range tagSets {
			rects := Layout(d.w, d.h, tags)
			covered := make([]int, d.w*d.h)
			for _, r := range rects {
				if r.X < 0 || r.Y < 0 || r.X+r.W > d.w || r.Y+r.H > d.h {
					t.Fatalf("%dx%d n=%d: rect %+v out of bounds", d.w, d.h, len(tags), r)
				}
				for y := r.Y; y < r.Y+r.H; y++ {
					for x := r.X; x < r.X+r.W; x++ {
						covered[y*d.w+x]++
					}
				}
			}
			for i, c := range covered {
				if c != 1 {
					t.Fatalf("%dx%d n=%d: cell %d covered %d times", d.w, d.h, len(tags), i, c)
				}
			}
		}
	}
}
