package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/physx-binding/abi"
	"github.com/wippyai/physx-binding/native"
	"github.com/wippyai/physx-binding/native/physx"
	"github.com/wippyai/physx-binding/native/reference"
	"github.com/wippyai/physx-binding/px"
	"github.com/wippyai/physx-binding/script"
)

func main() {
	var (
		backend     = flag.String("backend", "reference", "Engine backend: reference or physx")
		steps       = flag.Int("steps", 240, "Number of simulation steps")
		dt          = flag.Float64("dt", 1.0/60, "Step size in seconds")
		height      = flag.Float64("height", 10, "Initial sphere height")
		radius      = flag.Float64("radius", 0.5, "Sphere radius")
		restitution = flag.Float64("restitution", 0, "Material restitution")
		workers     = flag.Int("workers", px.DefaultWorkers, "Scene worker threads")
		gravity     = flag.Float64("gravity", float64(px.DefaultGravity.Y), "Gravity along Y")
		every       = flag.Int("every", 10, "Print every N steps")
		pvd         = flag.Bool("pvd", false, "Connect to a visual debugger on 127.0.0.1:5425")
		scriptFile  = flag.String("script", "", "Run a Lua script instead of the demo")
		wasmFile    = flag.String("wasm", "", "Run a WebAssembly guest against the pxabi host module")
		funcName    = flag.String("func", "run", "Guest function to call with -wasm")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer l.Sync()
		px.SetLogger(l)
		reference.SetLogger(l)
		abi.SetLogger(l)
		script.SetLogger(l)
	}

	cfg := simConfig{
		steps:       *steps,
		dt:          float32(*dt),
		height:      float32(*height),
		radius:      float32(*radius),
		restitution: float32(*restitution),
		workers:     *workers,
		gravity:     float32(*gravity),
		pvd:         *pvd,
	}

	b, err := newBinding(*backend, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	ctx := context.Background()
	switch {
	case *scriptFile != "":
		err = runScript(ctx, b, *scriptFile)
	case *wasmFile != "":
		err = runWasm(ctx, b, *wasmFile, *funcName)
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			err = fmt.Errorf("interactive mode needs a terminal")
			break
		}
		err = runInteractive(b, cfg)
	default:
		err = runDemo(b, cfg, *every)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newBackend(name string) (native.Backend, error) {
	switch name {
	case "reference":
		return reference.New(reference.Options{}), nil
	case "physx":
		return physx.New()
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func newBinding(backend string, cfg simConfig) (*px.Binding, error) {
	nb, err := newBackend(backend)
	if err != nil {
		return nil, err
	}
	pcfg := px.DefaultConfig()
	pcfg.Scene.Workers = cfg.workers
	pcfg.Scene.Gravity.Y = cfg.gravity
	return px.New(nb, pcfg)
}

func runDemo(b *px.Binding, cfg simConfig, every int) error {
	sc, err := newScenario(b, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Backend: %s  workers: %d  dt: %.4fs  steps: %d\n\n", b.Backend(), cfg.workers, cfg.dt, cfg.steps)
	fmt.Printf("%6s %8s %10s %10s\n", "step", "time", "height", "velocity")

	if every < 1 {
		every = 1
	}
	var last sample
	for !sc.finished() {
		last, err = sc.advance()
		if err != nil {
			return err
		}
		if last.step%every == 0 || sc.finished() {
			fmt.Printf("%6d %8.3f %10.4f %10.4f\n", last.step, last.t, last.y, last.vy)
		}
	}
	fmt.Printf("\nRest height %.4f (radius %.2f), lowest %.4f\n", last.y, cfg.radius, sc.lowest)
	return nil
}

func runScript(ctx context.Context, b *px.Binding, path string) error {
	r := script.New(b, script.DefaultOptions())
	defer r.Close()
	return r.RunFile(ctx, path)
}

func runWasm(ctx context.Context, b *px.Binding, path, funcName string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	// Compiled guests commonly import WASI for stdio and the clock.
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	host := abi.New(b)
	if _, err := host.Instantiate(ctx, rt); err != nil {
		return err
	}
	guest, err := rt.Instantiate(ctx, data)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	defer guest.Close(ctx)

	fn := guest.ExportedFunction(funcName)
	if fn == nil {
		return fmt.Errorf("guest does not export %q", funcName)
	}
	results, err := fn.Call(ctx)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}
	fmt.Printf("Result: %v\n", results)
	if err := host.LastError(); err != nil {
		fmt.Printf("Last error: %v\n", err)
	}
	fmt.Printf("Live handles: %d\n", b.Live())
	return nil
}
