package abi

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/abi/internal/memory"
	"github.com/wippyai/physx-binding/px"
)

// ModuleName is the import module name guests use.
const ModuleName = "pxabi"

var (
	i32 = api.ValueTypeI32
	f32 = api.ValueTypeF32
)

// handler runs one host call. Results are written to stack[0] on success;
// on error the caller writes the definition's failure value.
type handler func(ctx context.Context, mem *memory.Wrapper, stack []uint64) error

type funcDef struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
	fn      handler
	fail    uint64
	// keep leaves the last-error slot untouched
	keep bool
}

// Host serves the pxabi functions against one Binding. Calls are
// serialized.
type Host struct {
	b    *px.Binding
	log  *zap.Logger
	defs map[string]funcDef
	list []funcDef
	last error
	mu   sync.Mutex
}

// New creates a host over b.
func New(b *px.Binding) *Host {
	h := &Host{b: b, log: Logger()}
	h.list = h.funcs()
	h.defs = make(map[string]funcDef, len(h.list))
	for _, d := range h.list {
		h.defs[d.name] = d
	}
	return h
}

// Binding returns the binding the host serves.
func (h *Host) Binding() *px.Binding { return h.b }

// Functions returns the exported function names in definition order.
func (h *Host) Functions() []string {
	names := make([]string, len(h.list))
	for i, d := range h.list {
		names[i] = d.name
	}
	return names
}

// Instantiate builds the pxabi host module into rt.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(ModuleName)
	for _, d := range h.list {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(h.wrap(d), d.params, d.results).
			WithName(d.name).
			Export(d.name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("abi: instantiate %s: %w", ModuleName, err)
	}
	h.log.Debug("host module instantiated", zap.Int("functions", len(h.list)))
	return mod, nil
}

func (h *Host) wrap(d funcDef) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		var mem *memory.Wrapper
		if mod != nil {
			mem = memory.Wrap(mod.Memory())
		}
		h.dispatch(ctx, d, mem, stack)
	}
}

func (h *Host) dispatch(ctx context.Context, d funcDef, mem *memory.Wrapper, stack []uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !d.keep {
		h.last = nil
	}
	err := d.fn(ctx, mem, stack)
	if err == nil {
		return
	}
	if len(d.results) > 0 {
		stack[0] = d.fail
	}
	if !d.keep {
		h.last = err
	}
	h.log.Debug("call failed", zap.String("func", d.name), zap.Error(err))
}

// LastError returns the error recorded by the most recent failing call,
// or nil if the most recent call succeeded.
func (h *Host) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
