package orchestrator

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"homedesign/internal/design"
	"homedesign/internal/gallery"
	"homedesign/internal/genclient"
	"homedesign/internal/prompt"
	"homedesign/internal/quota"
)

type fakeClient struct {
	mu            sync.Mutex
	generateCalls int
	editCalls     int
	images        [][]byte
	err           error
	block         chan struct{} // when set, calls wait until closed
}

func (c *fakeClient) Generate(ctx context.Context, req genclient.GenerateRequest) ([][]byte, error) {
	c.mu.Lock()
	c.generateCalls++
	block := c.block
	c.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.images, c.err
}

func (c *fakeClient) Edit(ctx context.Context, req genclient.EditRequest) ([][]byte, error) {
	c.mu.Lock()
	c.editCalls++
	c.mu.Unlock()
	return c.images, c.err
}

func (c *fakeClient) calls() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generateCalls, c.editCalls
}

type fakeGate struct {
	mu    sync.Mutex
	used  int
	limit int
}

func (g *fakeGate) CanGenerateForFree() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.used < g.limit
}

func (g *fakeGate) Increment() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.used++
	return nil
}

func (g *fakeGate) Used() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.used
}

func (g *fakeGate) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.used = 0
	return nil
}

type fakeGallery struct {
	mu    sync.Mutex
	saves []gallery.SaveRequest
	err   error
}

func (g *fakeGallery) Save(ctx context.Context, req gallery.SaveRequest) (*gallery.Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.saves = append(g.saves, req)
	return &gallery.Handle{ID: uuid.New(), StorageKey: "generated/images/test/image.png"}, nil
}

func completeManager() *prompt.Manager {
	m := prompt.NewManager()
	m.SetOption(design.OptionInterior)
	m.SetRoom(design.RoomKitchen)
	m.SetStyle(design.StyleScandinavian)
	return m
}

func newOrchestrator(t *testing.T, client *fakeClient, gate quota.Gate, entitled bool, store Gallery, upsell UpsellFunc) *Orchestrator {
	t.Helper()
	o, err := New(Options{
		Client:       client,
		Gate:         gate,
		Entitlements: quota.StaticEntitlements(entitled),
		Gallery:      store,
		Upsell:       upsell,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func TestRunRejectsIncompleteContextWithoutNetworkCall(t *testing.T) {
	client := &fakeClient{}
	gate := &fakeGate{limit: 3}
	o := newOrchestrator(t, client, gate, false, &fakeGallery{}, nil)

	err := o.Run(context.Background(), prompt.NewManager(), nil)
	if !errors.Is(err, prompt.ErrIncompleteContext) {
		t.Fatalf("Run() = %v, want ErrIncompleteContext", err)
	}
	if g, e := client.calls(); g != 0 || e != 0 {
		t.Fatalf("client called for a rejected context")
	}
	if gate.Used() != 0 {
		t.Fatalf("quota consumed for a rejected context")
	}
}

func TestRunQuotaBlockedFiresUpsellAndLeavesCounter(t *testing.T) {
	client := &fakeClient{}
	gate := &fakeGate{used: 3, limit: 3}
	upsellCalls := 0
	o := newOrchestrator(t, client, gate, false, &fakeGallery{}, func() { upsellCalls++ })

	err := o.Run(context.Background(), completeManager(), nil)
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("Run() = %v, want ErrQuotaExhausted", err)
	}
	if upsellCalls != 1 {
		t.Fatalf("upsell calls = %d, want 1", upsellCalls)
	}
	if gate.Used() != 3 {
		t.Fatalf("Used() = %d, counter must not move on a blocked attempt", gate.Used())
	}
	if g, e := client.calls(); g != 0 || e != 0 {
		t.Fatalf("client called for a blocked attempt")
	}
}

func TestRunEntitlementBypassesGate(t *testing.T) {
	client := &fakeClient{images: [][]byte{[]byte("img")}}
	gate := &fakeGate{used: 3, limit: 3}
	o := newOrchestrator(t, client, gate, true, &fakeGallery{}, nil)

	if err := o.Run(context.Background(), completeManager(), nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gate.Used() != 3 {
		t.Fatalf("entitled run must not touch the free counter")
	}
}

func TestRunSuccessPersistsSequentiallyLastIsPrimary(t *testing.T) {
	client := &fakeClient{images: [][]byte{[]byte("one"), []byte("two"), []byte("three")}}
	gate := &fakeGate{limit: 3}
	store := &fakeGallery{}
	o := newOrchestrator(t, client, gate, false, store, nil)

	var result Result
	sinkCalls := 0
	err := o.Run(context.Background(), completeManager(), func(res Result) {
		sinkCalls++
		result = res
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sinkCalls != 1 {
		t.Fatalf("sink calls = %d, want 1", sinkCalls)
	}
	if len(store.saves) != 3 {
		t.Fatalf("saves = %d, want 3", len(store.saves))
	}
	if string(result.Image) != "three" {
		t.Fatalf("primary image = %q, want the last one", result.Image)
	}
	if len(result.Handles) != 3 || result.Handle != result.Handles[2] {
		t.Fatalf("primary handle must be the last persisted")
	}
	if result.Style != "Scandinavian" {
		t.Fatalf("Style = %q", result.Style)
	}
	if gate.Used() != 1 {
		t.Fatalf("Used() = %d, want 1", gate.Used())
	}
	if o.State() != StateIdle {
		t.Fatalf("State() = %v, want idle after completion", o.State())
	}
}

func TestRunFailureStillConsumesQuota(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	gate := &fakeGate{limit: 3}
	o := newOrchestrator(t, client, gate, false, &fakeGallery{}, nil)

	sinkCalled := false
	err := o.Run(context.Background(), completeManager(), func(Result) { sinkCalled = true })
	if err == nil {
		t.Fatalf("Run() should fail")
	}
	if sinkCalled {
		t.Fatalf("sink must not run on failure")
	}
	if gate.Used() != 1 {
		t.Fatalf("Used() = %d, failed attempt must still consume", gate.Used())
	}
}

func TestRunSingleFlight(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{images: [][]byte{[]byte("img")}, block: block}
	gate := &fakeGate{limit: 3}
	o := newOrchestrator(t, client, gate, false, &fakeGallery{}, nil)

	done := make(chan error, 1)
	go func() {
		done <- o.Run(context.Background(), completeManager(), nil)
	}()

	// Wait until the first attempt reaches the blocked client call.
	deadline := time.After(2 * time.Second)
	for {
		if g, _ := client.calls(); g > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("first attempt never reached the client")
		case <-time.After(time.Millisecond):
		}
	}

	if err := o.Run(context.Background(), completeManager(), nil); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("second Run() = %v, want ErrGenerationInFlight", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	// After completion a new attempt is allowed again.
	if err := o.Run(context.Background(), completeManager(), nil); err != nil {
		t.Fatalf("Run() after completion = %v", err)
	}
}

func TestRunCancellationNeverReachesSink(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	client := &fakeClient{images: [][]byte{[]byte("img")}, block: block}
	gate := &fakeGate{limit: 3}
	o := newOrchestrator(t, client, gate, false, &fakeGallery{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	sinkCalled := false
	done := make(chan error, 1)
	go func() {
		done <- o.Run(ctx, completeManager(), func(Result) { sinkCalled = true })
	}()

	deadline := time.After(2 * time.Second)
	for {
		if g, _ := client.calls(); g > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("attempt never reached the client")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if sinkCalled {
		t.Fatalf("sink must not run after cancellation")
	}
}

func TestRunEditModeUsesEditCall(t *testing.T) {
	client := &fakeClient{images: [][]byte{[]byte("img")}}
	gate := &fakeGate{limit: 3}
	o := newOrchestrator(t, client, gate, false, &fakeGallery{}, nil)

	mgr := completeManager()
	mgr.SetBaseImage(image.NewNRGBA(image.Rect(0, 0, 50, 50)))

	if err := o.Run(context.Background(), mgr, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	g, e := client.calls()
	if g != 0 || e != 1 {
		t.Fatalf("calls = generate %d edit %d, want edit only", g, e)
	}
}

func TestStartAndCancel(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	client := &fakeClient{images: [][]byte{[]byte("img")}, block: block}
	gate := &fakeGate{limit: 3}
	o := newOrchestrator(t, client, gate, false, &fakeGallery{}, nil)

	errCh := make(chan error, 1)
	if err := o.Start(context.Background(), completeManager(), nil, func(err error) { errCh <- err }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := o.Start(context.Background(), completeManager(), nil, nil); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("second Start() = %v, want ErrGenerationInFlight", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if g, _ := client.calls(); g > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("started attempt never reached the client")
		case <-time.After(time.Millisecond):
		}
	}
	o.Cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("errSink got %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled attempt never reported")
	}
}
