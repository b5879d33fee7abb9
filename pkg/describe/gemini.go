package describe

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mhagedorn/scenegraph/pkg/errors"
	"github.com/mhagedorn/scenegraph/pkg/httputil"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// Default generation parameters. The low-variance sampling setup keeps
// object inventories stable across runs of the same image.
const (
	DefaultModel       = "gemini-1.5-pro-latest"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultTopK        = 50
	DefaultMaxTokens   = 2000
)

// ErrEmptyReply is returned when the model produced no text parts.
var ErrEmptyReply = stderrors.New("model reply contains no text")

// GeminiOptions configure the vision model. Zero fields select the
// package defaults.
type GeminiOptions struct {
	APIKey      string
	Model       string
	Temperature float32
	TopP        float32
	TopK        int32
	MaxTokens   int32
}

func (o GeminiOptions) withDefaults() GeminiOptions {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.TopP == 0 {
		o.TopP = DefaultTopP
	}
	if o.TopK == 0 {
		o.TopK = DefaultTopK
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	return o
}

// Gemini implements Describer against Google's Gemini vision models.
type Gemini struct {
	client *genai.Client
	opts   GeminiOptions
}

// NewGemini creates the API client. An empty key is rejected here
// rather than surfacing as an opaque failure on first use.
func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "missing API key: set GOOGLE_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "create API client")
	}
	return &Gemini{client: client, opts: opts.withDefaults()}, nil
}

// Describe sends the image and the schema prompt to the model, retries
// transient API failures, and parses the reply into a scene.
func (g *Gemini) Describe(ctx context.Context, name string, image []byte) (*scene.Scene, error) {
	model := g.client.GenerativeModel(g.opts.Model)
	model.SetCandidateCount(1)
	model.SetTemperature(g.opts.Temperature)
	model.SetTopP(g.opts.TopP)
	model.SetTopK(g.opts.TopK)
	model.SetMaxOutputTokens(g.opts.MaxTokens)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemMessage)}}

	prompt := genai.Text(Prompt(name))
	img := genai.ImageData(imageFormat(name), image)

	var reply string
	err := httputil.Retry(ctx, 3, time.Second, func() error {
		resp, err := model.GenerateContent(ctx, prompt, img)
		if err != nil {
			if transient(err) {
				return &httputil.RetryableError{Err: err}
			}
			return err
		}
		reply, err = responseText(resp)
		return err
	})
	if err != nil {
		return nil, apiError(err, name)
	}

	raw, ok := ExtractJSON(reply)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "model reply for %s is not a JSON object", name)
	}
	sc, err := scene.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	if sc.ImageName == "" {
		sc.ImageName = name
	}
	return sc, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error { return g.client.Close() }

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyReply
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyReply
	}
	return b.String(), nil
}

// transient reports whether a generation failure is worth retrying.
// The service signals these conditions with gRPC codes.
func transient(err error) bool {
	s, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch s.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Internal, codes.Aborted:
		return true
	}
	return false
}

// apiError maps a failed generation onto the coded errors the CLI and
// API boundary report. Context errors pass through untouched.
func apiError(err error, name string) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch grpcCode(err) {
	case codes.ResourceExhausted:
		return errors.Wrap(errors.ErrCodeRateLimited, err, "describe %s", name)
	case codes.Unauthenticated, codes.PermissionDenied:
		return errors.Wrap(errors.ErrCodeUnauthorized, err, "describe %s", name)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "describe %s", name)
}

func grpcCode(err error) codes.Code {
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	return codes.Unknown
}

// imageFormat maps a filename to the image subtype the API expects.
// Unknown extensions fall back to jpeg.
func imageFormat(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	case ".heic":
		return "heic"
	default:
		return "jpeg"
	}
}

// Ensure both implementations satisfy Describer.
var (
	_ Describer = (*Gemini)(nil)
	_ Describer = (Func)(nil)
)
