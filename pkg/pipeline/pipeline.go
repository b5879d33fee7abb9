// Package pipeline orchestrates the full visualization run: describe an
// image into a scene document, build the relation graph, compute a
// layout, and render the requested artifacts.
//
// Every stage is cached individually, keyed by a content hash of its
// input plus the options that affect its output. Changing a render
// option therefore re-renders without re-running the describe call.
// [Runner.Execute] runs all stages; the per-stage methods expose the
// same work for callers that need intermediate results.
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/describe"
	"github.com/mhagedorn/scenegraph/pkg/errors"
	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/render"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// ============================================================================
// Formats and modes
// ============================================================================

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats enumerates the formats the render stage can produce.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Rendering modes.
const (
	// ModeDiagram draws the graph as an abstract node-link diagram on
	// the layout frame.
	ModeDiagram = "diagram"

	// ModeOverlay draws bounding boxes, markers and relation edges on
	// the source image's pixel frame.
	ModeOverlay = "overlay"
)

// ValidModes enumerates the rendering modes.
var ValidModes = map[string]bool{
	ModeDiagram: true,
	ModeOverlay: true,
}

// ValidateFormat checks that format names a supported output.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format %q (valid: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateMode checks that mode names a supported rendering mode.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidInput,
			"unsupported mode %q (valid: diagram, overlay)", mode)
	}
	return nil
}

// ============================================================================
// Options
// ============================================================================

// Options configures a single pipeline run. Populate one input field
// and call [Options.ValidateAndSetDefaults] (Execute does this
// automatically). The struct serializes to JSON for API requests.
type Options struct {
	// Input. SceneDoc takes precedence over Image: when both are set
	// the describe stage is skipped and the document is parsed as-is.
	Image     string `json:"image,omitempty"`      // path to the source image
	ImageData []byte `json:"image_data,omitempty"` // raw image bytes (uploads); Image supplies the name
	SceneDoc  string `json:"scene_doc,omitempty"`  // scene document JSON, bypasses describe

	// Describe options. These participate in the scene cache key, so
	// they must match the configured describer.
	Model       string  `json:"model,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`

	// Layout options.
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Padding    float64 `json:"padding,omitempty"`
	K          float64 `json:"k,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`

	// Render options.
	Mode        string        `json:"mode,omitempty"`
	Formats     []string      `json:"formats,omitempty"`
	Style       *render.Style `json:"style,omitempty"`
	Detailed    bool          `json:"detailed,omitempty"`     // verbose DOT node labels
	ImageWidth  float64       `json:"image_width,omitempty"`  // overlay frame, resolved from the image when zero
	ImageHeight float64       `json:"image_height,omitempty"` // overlay frame, resolved from the image when zero

	// Refresh bypasses cache reads so every stage recomputes. Fresh
	// results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ============================================================================
// Validation and defaults
// ============================================================================

// ValidateAndSetDefaults validates the options and fills defaults for
// every stage. It is idempotent: the second call is a no-op even if
// fields were mutated in between.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDescribe(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDescribe checks that an input is present and fills
// describe defaults.
func (o *Options) ValidateForDescribe() error {
	if o.SceneDoc == "" && o.Image == "" && len(o.ImageData) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "an image or a scene document is required")
	}
	if o.Model == "" {
		o.Model = describe.DefaultModel
	}
	if o.Temperature == 0 {
		o.Temperature = describe.DefaultTemperature
	}
	return nil
}

// SetLayoutDefaults fills zero layout fields. Defaults are resolved
// here rather than inside the layout package so cache keys are
// computed from the effective values.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = layout.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = layout.DefaultHeight
	}
	if o.Iterations == 0 {
		o.Iterations = layout.DefaultIterations
	}
	if o.Padding == 0 {
		o.Padding = layout.DefaultPadding
	}
	if o.K == 0 {
		o.K = layout.DefaultK
	}
}

// ValidateForRender checks the mode and formats and fills render
// defaults.
func (o *Options) ValidateForRender() error {
	if o.Mode == "" {
		o.Mode = ModeDiagram
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// IsOverlay reports whether the run renders onto the image frame.
func (o *Options) IsOverlay() bool { return o.Mode == ModeOverlay }

// imageName is the display name for the image input.
func (o *Options) imageName() string {
	if o.Image != "" {
		return filepath.Base(o.Image)
	}
	if len(o.ImageData) > 0 {
		return "upload"
	}
	return ""
}

// ============================================================================
// Cache key plumbing
// ============================================================================

func (o *Options) sceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Model:       o.Model,
		Temperature: float64(o.Temperature),
	}
}

func (o *Options) layoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Iterations: o.Iterations,
		Padding:    o.Padding,
		K:          o.K,
		Seed:       o.Seed,
	}
}

func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Mode:   o.Mode,
		Format: format,
		Style:  o.styleFingerprint(),
	}
}

// styleFingerprint folds every visual knob into one string so artifact
// cache keys change when the styling does.
func (o *Options) styleFingerprint() string {
	st := render.NewStyle(o.styleOptions()...)
	return fmt.Sprintf("%+v|%gx%g|%gx%g|detailed=%t",
		st, o.Width, o.Height, o.ImageWidth, o.ImageHeight, o.Detailed)
}

// layoutOptions converts the layout fields for the layout package.
func (o *Options) layoutOptions() layout.Options {
	return layout.Options{
		Width:      o.Width,
		Height:     o.Height,
		Iterations: o.Iterations,
		Padding:    o.Padding,
		K:          o.K,
		Seed:       o.Seed,
	}
}

// styleOptions converts the style overrides for the render packages.
// Only explicitly set fields override the render defaults.
func (o *Options) styleOptions() []render.Option {
	if o.Style == nil {
		return nil
	}
	s := o.Style
	var out []render.Option
	if s.EdgeColor != "" {
		out = append(out, render.WithEdgeColor(s.EdgeColor))
	}
	if s.EdgeWidth != 0 {
		out = append(out, render.WithEdgeWidth(s.EdgeWidth))
	}
	if s.NodeColor != "" {
		out = append(out, render.WithNodeColor(s.NodeColor))
	}
	if s.NodeSize != 0 {
		out = append(out, render.WithNodeSize(s.NodeSize))
	}
	if s.Background != "" {
		out = append(out, render.WithBackground(s.Background))
	}
	if s.FontFamily != "" {
		out = append(out, render.WithFontFamily(s.FontFamily))
	}
	if s.FontSize != 0 {
		out = append(out, render.WithFontSize(s.FontSize))
	}
	return out
}

// ============================================================================
// Results
// ============================================================================

// Result carries everything a pipeline run produced.
type Result struct {
	Scene     *scene.Scene
	Graph     *graph.Graph
	SceneHash string
	GraphHash string
	Positions layout.PositionMap
	Artifacts map[string][]byte // format -> rendered bytes

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records sizes and stage timings for one run.
type Stats struct {
	ObjectCount  int           `json:"object_count"`
	NodeCount    int           `json:"node_count"`
	EdgeCount    int           `json:"edge_count"`
	DescribeTime time.Duration `json:"describe_time"`
	BuildTime    time.Duration `json:"build_time"`
	LayoutTime   time.Duration `json:"layout_time"`
	RenderTime   time.Duration `json:"render_time"`
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	SceneHit  bool `json:"scene_hit"`
	GraphHit  bool `json:"graph_hit"`
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit"`
}
