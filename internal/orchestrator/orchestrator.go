package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"homedesign/internal/design"
	"homedesign/internal/gallery"
	"homedesign/internal/genclient"
	"homedesign/internal/infra"
	"homedesign/internal/prompt"
	"homedesign/internal/quota"
)

var (
	// ErrGenerationInFlight indicates a second attempt was started while one
	// is already running.
	ErrGenerationInFlight = errors.New("orchestrator: generation already in flight")
	// ErrQuotaExhausted indicates the free quota is used up and no entitlement
	// is active.
	ErrQuotaExhausted = errors.New("orchestrator: free quota exhausted")
)

// State is the orchestrator's lifecycle phase. Every attempt passes through
// Validating and ends back at Idle.
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateRejected     State = "rejected"
	StateQuotaBlocked State = "quota_blocked"
	StateRunning      State = "running"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
	StateCancelled    State = "cancelled"
)

// GenerationClient is the remote API surface the orchestrator drives.
type GenerationClient interface {
	Generate(ctx context.Context, req genclient.GenerateRequest) ([][]byte, error)
	Edit(ctx context.Context, req genclient.EditRequest) ([][]byte, error)
}

// Gallery persists generated images.
type Gallery interface {
	Save(ctx context.Context, req gallery.SaveRequest) (*gallery.Handle, error)
}

// UpsellFunc is invoked when an attempt is blocked by the free quota, so the
// caller can surface a purchase prompt.
type UpsellFunc func()

// Result is delivered to the sink after a successful attempt. When the API
// returns several images, Image and Handle describe the primary one (the last
// persisted); Handles lists all persisted images in order.
type Result struct {
	Image     []byte
	Handle    *gallery.Handle
	Handles   []*gallery.Handle
	Option    design.Option
	Style     string
	ColorName string
	Prompt    string
}

// Sink receives the outcome of a successful attempt.
type Sink func(Result)

// Options wires the orchestrator's collaborators.
type Options struct {
	Client        GenerationClient
	Gate          quota.Gate
	Entitlements  quota.Entitlements
	Gallery       Gallery
	Upsell        UpsellFunc
	Logger        *infra.Logger
	GenerateModel string
	EditModel     string
	Count         int
}

// Orchestrator runs one generation attempt at a time: it validates the
// context, applies the quota gate, calls the remote API, persists the output
// images, and hands the primary result to the sink. At most one attempt may
// be in flight; a second start fails with ErrGenerationInFlight.
type Orchestrator struct {
	client        GenerationClient
	gate          quota.Gate
	entitlements  quota.Entitlements
	gallery       Gallery
	upsell        UpsellFunc
	logger        *infra.Logger
	generateModel string
	editModel     string
	count         int

	mu      sync.Mutex
	state   State
	running bool
	cancel  context.CancelFunc
}

// New constructs an orchestrator. Client, Gate, Entitlements, and Gallery are
// required.
func New(opts Options) (*Orchestrator, error) {
	if opts.Client == nil {
		return nil, errors.New("orchestrator: client is required")
	}
	if opts.Gate == nil {
		return nil, errors.New("orchestrator: quota gate is required")
	}
	if opts.Entitlements == nil {
		return nil, errors.New("orchestrator: entitlements are required")
	}
	if opts.Gallery == nil {
		return nil, errors.New("orchestrator: gallery is required")
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	generateModel := opts.GenerateModel
	if generateModel == "" {
		generateModel = "gpt-image-1"
	}
	editModel := opts.EditModel
	if editModel == "" {
		editModel = "dall-e-2"
	}
	count := opts.Count
	if count <= 0 {
		count = 1
	}
	return &Orchestrator{
		client:        opts.Client,
		gate:          opts.Gate,
		entitlements:  opts.Entitlements,
		gallery:       opts.Gallery,
		upsell:        opts.Upsell,
		logger:        logger,
		generateModel: generateModel,
		editModel:     editModel,
		count:         count,
		state:         StateIdle,
	}, nil
}

// State returns the current lifecycle phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Run executes one attempt synchronously. The quota is consumed before the
// network call and is not refunded on failure. Cancellation via ctx stops the
// attempt at the next checkpoint; a cancelled attempt never reaches the sink.
func (o *Orchestrator) Run(ctx context.Context, mgr *prompt.Manager, sink Sink) error {
	if err := o.acquire(); err != nil {
		return err
	}
	defer o.release()

	o.setState(StateValidating)

	snapshot := mgr.Context()
	isEdit := snapshot.BaseImage != nil
	model := o.generateModel
	if isEdit {
		model = o.editModel
	}

	req, err := mgr.BuildRequest(model)
	if err != nil {
		o.setState(StateRejected)
		return err
	}

	if !o.entitlements.Active() {
		if !o.gate.CanGenerateForFree() {
			o.setState(StateQuotaBlocked)
			if o.upsell != nil {
				o.upsell()
			}
			return ErrQuotaExhausted
		}
		// Consumed up front: a failed network call still costs an attempt.
		if err := o.gate.Increment(); err != nil {
			o.setState(StateFailed)
			return fmt.Errorf("orchestrator: record quota use: %w", err)
		}
	}

	o.setState(StateRunning)
	if err := ctx.Err(); err != nil {
		o.setState(StateCancelled)
		return err
	}

	var images [][]byte
	if isEdit {
		images, err = o.client.Edit(ctx, genclient.EditRequest{
			Base:      req.Base,
			Reference: req.Reference,
			Prompt:    req.Payload.User,
			MaskPNG:   req.MaskPNG,
			Model:     model,
			Count:     o.count,
		})
	} else {
		images, err = o.client.Generate(ctx, genclient.GenerateRequest{
			Prompt: req.Payload.User,
			Model:  model,
			Count:  o.count,
			Size:   req.APISize,
		})
	}
	if err != nil {
		if ctx.Err() != nil {
			o.setState(StateCancelled)
			return ctx.Err()
		}
		o.setState(StateFailed)
		o.logger.Error().Err(err).Str("model", model).Msg("orchestrator: generation failed")
		return fmt.Errorf("orchestrator: generation failed: %w", err)
	}
	if len(images) == 0 {
		o.setState(StateFailed)
		return fmt.Errorf("orchestrator: generation failed: %w", genclient.ErrEmptyResponse)
	}

	styleName := ""
	if snapshot.Style != nil {
		styleName = snapshot.Style.Name()
	}
	colorName := ""
	if snapshot.Palette != "" {
		colorName = snapshot.Palette.Name()
	}

	// Persist sequentially; the last successfully saved image is primary.
	var handles []*gallery.Handle
	var primary []byte
	var primaryHandle *gallery.Handle
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			o.setState(StateCancelled)
			return err
		}
		handle, saveErr := o.gallery.Save(ctx, gallery.SaveRequest{
			Data:      img,
			Prompt:    req.Payload.User,
			Model:     model,
			Size:      req.APISize,
			Style:     styleName,
			ColorName: colorName,
		})
		if saveErr != nil {
			o.logger.Warn().Err(saveErr).Msg("orchestrator: persist image failed")
			continue
		}
		handles = append(handles, handle)
		primary = img
		primaryHandle = handle
	}
	if primaryHandle == nil {
		o.setState(StateFailed)
		return errors.New("orchestrator: no image could be persisted")
	}

	if err := ctx.Err(); err != nil {
		o.setState(StateCancelled)
		return err
	}

	o.setState(StateSucceeded)
	if sink != nil {
		sink(Result{
			Image:     primary,
			Handle:    primaryHandle,
			Handles:   handles,
			Option:    snapshot.Option,
			Style:     styleName,
			ColorName: colorName,
			Prompt:    req.Payload.User,
		})
	}
	return nil
}

// Start runs an attempt on its own goroutine with a cancelable context and
// returns immediately. Errors surface through errSink when provided.
func (o *Orchestrator) Start(ctx context.Context, mgr *prompt.Manager, sink Sink, errSink func(error)) error {
	o.mu.Lock()
	if o.running || o.cancel != nil {
		o.mu.Unlock()
		return ErrGenerationInFlight
	}
	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.mu.Unlock()

	go func() {
		defer cancel()
		if err := o.Run(runCtx, mgr, sink); err != nil && errSink != nil {
			errSink(err)
		}
	}()
	return nil
}

// Cancel stops the in-flight attempt, if any.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	cancel := o.cancel
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (o *Orchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return ErrGenerationInFlight
	}
	o.running = true
	return nil
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	o.running = false
	o.cancel = nil
	o.state = StateIdle
	o.mu.Unlock()
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}
