package render

import (
	"fmt"
	"sort"
	"strings"
)

// Theme holds the two colors a rain effect needs: the falling head and the trail base
type Theme struct {
	Head  RGB
	Trail RGB
}

// DefaultTheme is used when no theme is configured
const DefaultTheme = "green"

// headLift is how far the head color is pulled toward white from the base
const headLift = 0.65

var themeBases = map[string]RGB{
	"green":  {R: 0, G: 255, B: 0},
	"amber":  {R: 255, G: 191, B: 0},
	"red":    {R: 255, G: 0, B: 0},
	"orange": {R: 255, G: 165, B: 0},
	"blue":   {R: 0, G: 150, B: 255},
	"purple": {R: 128, G: 0, B: 255},
	"cyan":   {R: 0, G: 255, B: 255},
	"pink":   {R: 255, G: 20, B: 147},
	"white":  {R: 200, G: 200, B: 200},
}

// ThemeByName resolves a theme; "classic" keeps the yellow head over red trail
func ThemeByName(name string) (Theme, error) {
	name = strings.ToLower(name)
	if name == "" {
		name = DefaultTheme
	}
	if name == "classic" {
		return Theme{Head: RGB{R: 255, G: 255, B: 0}, Trail: RGB{R: 255, G: 0, B: 0}}, nil
	}
	base, ok := themeBases[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown color theme: %s", name)
	}
	return Theme{Head: BlendLab(base, RGBWhite, headLift), Trail: base}, nil
}

// ThemeNames lists selectable themes in sorted order
func ThemeNames() []string {
	names := make([]string, 0, len(themeBases)+1)
	for n := range themeBases {
		names = append(names, n)
	}
	names = append(names, "classic")
	sort.Strings(names)
	return names
}
