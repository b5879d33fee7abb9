package render

// Visual defaults: thin white edges and blue markers on a black background.
const (
	DefaultEdgeWidth     = 0.3
	DefaultEdgeColor     = "#FFFFFF"
	DefaultNodeColor     = "blue"
	DefaultNodeSize      = 20.0
	DefaultBackground    = "black"
	DefaultFontFamily    = "Helvetica"
	DefaultFontSize      = 12.0
	DefaultEdgeLabelSize = 10.0
	DefaultLabelColor    = "#FFFFFF"
	DefaultRectWidth     = 2.0
)

// Style carries the resolved visual options for one render call.
// Construct with [NewStyle]; the zero value draws nothing visible.
type Style struct {
	EdgeColor  string
	EdgeWidth  float64
	NodeColor  string
	NodeSize   float64
	Background string
	FontFamily string
	FontSize   float64

	// EdgeLabelSize is fixed relative to the defaults rather than
	// exposed as an option; edge labels stay small and subordinate.
	EdgeLabelSize float64
}

// Option adjusts the style of a render call.
type Option func(*Style)

// WithEdgeColor sets the stroke color for edge lines.
func WithEdgeColor(c string) Option { return func(s *Style) { s.EdgeColor = c } }

// WithEdgeWidth sets the stroke width for edge lines.
func WithEdgeWidth(w float64) Option { return func(s *Style) { s.EdgeWidth = w } }

// WithNodeColor sets the marker fill color.
func WithNodeColor(c string) Option { return func(s *Style) { s.NodeColor = c } }

// WithNodeSize sets the marker diameter.
func WithNodeSize(v float64) Option { return func(s *Style) { s.NodeSize = v } }

// WithBackground sets the canvas background color consumed by sinks.
func WithBackground(c string) Option { return func(s *Style) { s.Background = c } }

// WithFontFamily sets the font family stamped onto text primitives.
func WithFontFamily(f string) Option { return func(s *Style) { s.FontFamily = f } }

// WithFontSize sets the node label font size.
func WithFontSize(v float64) Option { return func(s *Style) { s.FontSize = v } }

// NewStyle resolves options over the visual defaults.
func NewStyle(opts ...Option) Style {
	s := Style{
		EdgeColor:     DefaultEdgeColor,
		EdgeWidth:     DefaultEdgeWidth,
		NodeColor:     DefaultNodeColor,
		NodeSize:      DefaultNodeSize,
		Background:    DefaultBackground,
		FontFamily:    DefaultFontFamily,
		FontSize:      DefaultFontSize,
		EdgeLabelSize: DefaultEdgeLabelSize,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
