package script

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/px"
)

// ModuleName is the Lua module name.
const ModuleName = "px"

// Options configures a Runtime.
type Options struct {
	// Output receives print output. Nil keeps Lua's default stdout print.
	Output io.Writer
	// PageSize is the enumeration page size used by scene:actors and
	// actor:shapes.
	PageSize int
}

// DefaultOptions prints to stdout and enumerates in pages of 64.
func DefaultOptions() Options {
	return Options{Output: os.Stdout, PageSize: 64}
}

// Runtime is a Lua state bound to one Binding. Not safe for concurrent use.
type Runtime struct {
	L    *lua.LState
	b    *px.Binding
	log  *zap.Logger
	opts Options
}

// New creates a Lua state with the px module installed.
func New(b *px.Binding, opts Options) *Runtime {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultOptions().PageSize
	}
	r := &Runtime{
		L:    lua.NewState(),
		b:    b,
		log:  Logger(),
		opts: opts,
	}
	r.registerTypes()
	r.L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(r.module(L))
		return 1
	})
	r.L.SetGlobal(ModuleName, r.module(r.L))
	if opts.Output != nil {
		r.L.SetGlobal("print", r.L.NewFunction(r.print))
	}
	return r
}

// Binding returns the binding scripts operate on.
func (r *Runtime) Binding() *px.Binding { return r.b }

// Run executes src. name labels the chunk in error messages.
func (r *Runtime) Run(ctx context.Context, name, src string) error {
	r.L.SetContext(ctx)
	fn, err := r.L.Load(strings.NewReader(src), name)
	if err != nil {
		return r.scriptError(err)
	}
	r.L.Push(fn)
	return r.scriptError(r.L.PCall(0, lua.MultRet, nil))
}

// RunFile executes the script at path.
func (r *Runtime) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.PhaseScript, errors.KindInvalidInput, err, "read script")
	}
	return r.Run(ctx, path, string(src))
}

// Global returns the value of a global variable after a run.
func (r *Runtime) Global(name string) lua.LValue {
	return r.L.GetGlobal(name)
}

// Close releases the Lua state. The binding stays open.
func (r *Runtime) Close() {
	r.L.Close()
}

// scriptError unwraps binding errors raised inside a script and classifies
// Lua failures.
func (r *Runtime) scriptError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *lua.ApiError
	if !stderrors.As(err, &apiErr) {
		return errors.Wrap(errors.PhaseScript, errors.KindOperationFailed, err, "")
	}
	if ud, ok := apiErr.Object.(*lua.LUserData); ok {
		if be, ok := ud.Value.(error); ok {
			return be
		}
	}
	kind := errors.KindOperationFailed
	if apiErr.Type == lua.ApiErrorSyntax {
		kind = errors.KindInvalidInput
	}
	r.log.Debug("script failed", zap.Error(err))
	return errors.Wrap(errors.PhaseScript, kind, err, "")
}

func (r *Runtime) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.opts.Output, strings.Join(parts, "\t"))
	return 0
}
