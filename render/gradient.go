package render

// Gradient maps a decay level to a display color
// Level 0 is the live head, 1..depth-1 ramp from the trail color toward the background,
// and any level >= depth is the erase sentinel
type Gradient struct {
	levels []RGB
	depth  int
}

// NewGradient builds the lookup table once; depth must be >= 1
func NewGradient(depth int, theme Theme, bg RGB) *Gradient {
	if depth < 1 {
		depth = 1
	}
	levels := make([]RGB, depth)
	levels[0] = theme.Head
	for l := 1; l < depth; l++ {
		// Level 1 is the full trail color, the last visible level is one step short of bg
		t := float64(l-1) / float64(depth-1)
		levels[l] = BlendLab(theme.Trail, bg, t)
	}
	return &Gradient{levels: levels, depth: depth}
}

// Color returns the color for level, false when the cell must be erased
func (g *Gradient) Color(level int) (RGB, bool) {
	if level >= g.depth {
		return RGB{}, false
	}
	if level < 0 {
		level = 0
	}
	return g.levels[level], true
}

// Depth returns the erase level
func (g *Gradient) Depth() int {
	return g.depth
}
