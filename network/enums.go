package network

import "fmt"

// LineColor is the color a line is drawn in, following the operator's map.
type LineColor string

const (
	ColorRed    LineColor = "red"
	ColorYellow LineColor = "yellow"
	ColorGreen  LineColor = "green"
	ColorCyan   LineColor = "cyan"
	ColorBlue   LineColor = "blue"
	ColorPurple LineColor = "purple"
	ColorPink   LineColor = "pink"
)

var lineColors = map[LineColor]bool{
	ColorRed: true, ColorYellow: true, ColorGreen: true, ColorCyan: true,
	ColorBlue: true, ColorPurple: true, ColorPink: true,
}

// ParseLineColor validates a line color string.
func ParseLineColor(value string) (LineColor, error) {
	c := LineColor(value)
	if !lineColors[c] {
		return "", fmt.Errorf("invalid line color %q", value)
	}
	return c, nil
}

// ServiceClass is the class of trains a line runs.
type ServiceClass string

const (
	ClassSuburban ServiceClass = "suburban"
	ClassRegional ServiceClass = "regional"
)

// ParseServiceClass validates a service class string.
func ParseServiceClass(value string) (ServiceClass, error) {
	c := ServiceClass(value)
	if c != ClassSuburban && c != ClassRegional {
		return "", fmt.Errorf("invalid service class %q", value)
	}
	return c, nil
}
