package render

// =============================================================================
// Constants - Primitive Kinds and Anchors
// =============================================================================

// Primitive kinds.
const (
	KindLine   = "line"
	KindMarker = "marker"
	KindLabel  = "label"
	KindRect   = "rect"
)

// Label anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// =============================================================================
// Primitive - Renderer-Agnostic Drawing Instruction
// =============================================================================

// Point is a 2-D coordinate on the output surface.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Primitive is one drawing instruction, consumable by any rendering
// surface (SVG, JSON interchange, a canvas).
//
// This is a discriminated union type - check Kind to determine which
// fields are populated:
//
//	Line ("line"):
//	  - From, To: segment endpoints
//	  - Width, Color: stroke
//
//	Marker ("marker"):
//	  - At: position; Size, Color: disc
//	  - Text: label drawn on the marker; Hover: tooltip text
//
//	Label ("label"):
//	  - At: position; Text: content
//	  - FontSize, Color, Anchor: typography
//
//	Rect ("rect"):
//	  - From, To: opposite corners
//	  - Width, Color: stroke (outline only, never filled)
//
// Renderers emit ordered slices of primitives; the order is part of the
// contract and stable across calls with identical inputs.
type Primitive struct {
	Kind string `json:"kind" bson:"kind"`

	// Line and rect geometry (rect: opposite corners).
	From Point `json:"from" bson:"from"`
	To   Point `json:"to" bson:"to"`

	// Marker and label geometry.
	At Point `json:"at" bson:"at"`

	Color    string  `json:"color,omitempty" bson:"color,omitempty"`
	Width    float64 `json:"width,omitempty" bson:"width,omitempty"`
	Size     float64 `json:"size,omitempty" bson:"size,omitempty"`
	Text     string  `json:"text,omitempty" bson:"text,omitempty"`
	Hover    string  `json:"hover,omitempty" bson:"hover,omitempty"`
	Font     string  `json:"font,omitempty" bson:"font,omitempty"`
	FontSize float64 `json:"font_size,omitempty" bson:"font_size,omitempty"`
	Anchor   string  `json:"anchor,omitempty" bson:"anchor,omitempty"`
}

// Line builds a line primitive between two points.
func Line(from, to Point, width float64, color string) Primitive {
	return Primitive{Kind: KindLine, From: from, To: to, Width: width, Color: color}
}

// Marker builds a marker primitive with on-marker text and hover text.
func Marker(at Point, size float64, color, text, hover string) Primitive {
	return Primitive{Kind: KindMarker, At: at, Size: size, Color: color, Text: text, Hover: hover}
}

// Label builds a text label primitive.
func Label(at Point, text string, fontSize float64, color, anchor string) Primitive {
	return Primitive{Kind: KindLabel, At: at, Text: text, FontSize: fontSize, Color: color, Anchor: anchor}
}

// Rect builds a rectangle outline primitive from two opposite corners.
func Rect(from, to Point, width float64, color string) Primitive {
	return Primitive{Kind: KindRect, From: from, To: to, Width: width, Color: color}
}
