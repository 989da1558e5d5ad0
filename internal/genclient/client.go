package genclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"homedesign/internal/canvas"
	"homedesign/internal/infra"
)

// orientationSuffix is appended to every edit prompt so the backend never
// mirrors the base photo regardless of what the compiled instruction says.
const orientationSuffix = "Keep left/right orientation identical to the base photo; do not change camera angle or FOV; never mirror or flip."

const (
	defaultGenerateTimeout = 120 * time.Second
	defaultEditTimeout     = 180 * time.Second
	jpegQuality            = 90
)

// Options configures the generation client.
type Options struct {
	Endpoint        string
	HTTPClient      *http.Client
	Logger          *infra.Logger
	GenerateTimeout time.Duration
	EditTimeout     time.Duration
}

// Client performs the two remote operations the app needs against a single
// configured endpoint: pure text-to-image generation and image edits with an
// optional style reference.
type Client struct {
	endpoint        string
	httpClient      *http.Client
	logger          *infra.Logger
	generateTimeout time.Duration
	editTimeout     time.Duration
}

// GenerateRequest captures the inputs for a text-to-image call.
type GenerateRequest struct {
	Prompt string
	Model  string
	Count  int
	Size   string
	Seed   *int
}

// EditRequest captures the inputs for an image-edit call. Base is required;
// Reference switches the backend into style-transfer mode; MaskPNG marks
// protected regions.
type EditRequest struct {
	Base      image.Image
	Reference image.Image
	Prompt    string
	MaskPNG   []byte
	Model     string
	Count     int
	Seed      *int
}

type generatePayload struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
	Seed   *int   `json:"seed,omitempty"`
}

type dataItem struct {
	B64JSON       string `json:"b64_json"`
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt"`
}

type dataResponse struct {
	Data []dataItem `json:"data"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
		Param   any    `json:"param"`
	} `json:"error"`
}

// NewClient constructs a client for the configured endpoint. The endpoint
// must be an absolute URL; anything else is a configuration error surfaced
// at construction time.
func NewClient(opts Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(opts.Endpoint))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, opts.Endpoint)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	generateTimeout := opts.GenerateTimeout
	if generateTimeout <= 0 {
		generateTimeout = defaultGenerateTimeout
	}
	editTimeout := opts.EditTimeout
	if editTimeout <= 0 {
		editTimeout = defaultEditTimeout
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		endpoint:        parsed.String(),
		httpClient:      httpClient,
		logger:          logger,
		generateTimeout: generateTimeout,
		editTimeout:     editTimeout,
	}, nil
}

// Generate performs a text-to-image call and returns the decoded image bytes.
// Only inline base64 payloads are accepted in this mode.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) ([][]byte, error) {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	size := strings.TrimSpace(req.Size)
	if size == "" {
		size = canvas.FormatPortrait.String()
	}
	payload := generatePayload{
		Model:  req.Model,
		Prompt: req.Prompt,
		N:      count,
		Size:   size,
		Seed:   req.Seed,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("genclient: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("genclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	decoded, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	images := make([][]byte, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		raw, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil || len(raw) == 0 {
			return nil, fmt.Errorf("%w: item has no usable b64 payload", ErrImageDecode)
		}
		images = append(images, raw)
	}
	c.logger.Debug().Int("count", len(images)).Msg("genclient: generated images")
	return images, nil
}

// Edit performs an image-edit call. The base and reference photos are padded
// to the square canvas the edit endpoint requires and sent as JPEG; the count
// is always forced to 1 because this backend mode does not support batches,
// and no size field is sent because the output size follows the input.
func (c *Client) Edit(ctx context.Context, req EditRequest) ([][]byte, error) {
	if req.Base == nil {
		return nil, fmt.Errorf("genclient: base image is required")
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	baseJPEG, err := encodeSquareJPEG(req.Base)
	if err != nil {
		return nil, err
	}
	if err := appendFilePart(mw, "image", "base.jpg", "image/jpeg", baseJPEG); err != nil {
		return nil, fmt.Errorf("genclient: write base part: %w", err)
	}

	if req.Reference != nil {
		refJPEG, err := encodeSquareJPEG(req.Reference)
		if err != nil {
			return nil, err
		}
		if err := appendFilePart(mw, "reference", "ref.jpg", "image/jpeg", refJPEG); err != nil {
			return nil, fmt.Errorf("genclient: write reference part: %w", err)
		}
	}

	if len(req.MaskPNG) > 0 {
		if err := appendFilePart(mw, "mask", "mask.png", "image/png", req.MaskPNG); err != nil {
			return nil, fmt.Errorf("genclient: write mask part: %w", err)
		}
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = "dall-e-2"
	}
	fields := [][2]string{
		{"prompt", strings.TrimSpace(req.Prompt) + " " + orientationSuffix},
		{"model", model},
		{"input_fidelity", "high"},
		{"n", "1"},
	}
	for _, field := range fields {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return nil, fmt.Errorf("genclient: write field %s: %w", field[0], err)
		}
	}
	if req.Seed != nil {
		if err := mw.WriteField("seed", strconv.Itoa(*req.Seed)); err != nil {
			return nil, fmt.Errorf("genclient: write field seed: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("genclient: finalize multipart body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.editTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, buf)
	if err != nil {
		return nil, fmt.Errorf("genclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	decoded, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	// Prefer inline base64; fall back to fetching the item's URL. The
	// fallback fetches run one at a time to bound concurrent connections.
	images := make([][]byte, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		if raw, err := base64.StdEncoding.DecodeString(item.B64JSON); err == nil && len(raw) > 0 {
			images = append(images, raw)
			continue
		}
		if item.URL != "" {
			raw, err := c.fetch(ctx, item.URL)
			if err == nil && len(raw) > 0 {
				images = append(images, raw)
				continue
			}
			c.logger.Warn().Err(err).Str("url", item.URL).Msg("genclient: url fallback fetch failed")
		}
		return nil, fmt.Errorf("%w: item has neither b64 payload nor fetchable url", ErrImageDecode)
	}
	c.logger.Debug().Int("count", len(images)).Msg("genclient: edited images")
	return images, nil
}

// do executes the request and normalizes the response: transport failures,
// structured API errors, body decode failures, and empty data lists each map
// to their own error class.
func (c *Client) do(req *http.Request) (*dataResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(raw, resp.StatusCode)
		c.logger.Error().Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("genclient: api error")
		return nil, apiErr
	}

	var decoded dataResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}
	if len(decoded.Data) == 0 {
		return nil, ErrEmptyResponse
	}
	return &decoded, nil
}

func (c *Client) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	parsed, err := url.Parse(strings.TrimSpace(imageURL))
	if err != nil || parsed.Scheme == "" {
		return nil, fmt.Errorf("genclient: invalid image url: %s", imageURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("genclient: build fetch request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("genclient: fetch status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseAPIError extracts the nested error object from a non-2xx body, falling
// back to the raw text when the body is not JSON.
func parseAPIError(raw []byte, statusCode int) *APIError {
	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		apiErr := &APIError{
			StatusCode: statusCode,
			Message:    body.Error.Message,
			ErrType:    body.Error.Type,
		}
		if body.Error.Code != nil {
			apiErr.Code = fmt.Sprint(body.Error.Code)
		}
		if body.Error.Param != nil {
			apiErr.Param = fmt.Sprint(body.Error.Param)
		}
		return apiErr
	}
	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = "unknown error"
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

func encodeSquareJPEG(img image.Image) ([]byte, error) {
	padded := canvas.PadToSquare(img, color.White)
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, padded, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("genclient: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func appendFilePart(mw *multipart.Writer, name, filename, mime string, data []byte) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, filename))
	header.Set("Content-Type", mime)
	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}
