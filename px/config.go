package px

import (
	"fmt"
	"time"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

// Defaults applied by DefaultConfig. Nothing else is defaulted.
var DefaultGravity = layout.Vec3f{X: 0, Y: -9.81, Z: 0}

const (
	DefaultWorkers   = 2
	DefaultDebugHost = "127.0.0.1"
	DefaultDebugPort = 5425
	DefaultDebugWait = 10 * time.Millisecond
)

// Config configures a Binding.
type Config struct {
	// Debug is the endpoint used by debug connectors created without an
	// explicit endpoint. Nil means DefaultDebugConfig.
	Debug *DebugConfig
	Scene SceneConfig
	Scale native.TolerancesScale
}

// SceneConfig configures one scene.
type SceneConfig struct {
	Gravity layout.Vec3f
	Workers int
}

// DebugConfig is the address of a remote visual debugger.
type DebugConfig struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// DefaultConfig returns the engine tolerances, default gravity and a
// two-worker dispatcher.
func DefaultConfig() Config {
	return Config{
		Scale: native.DefaultTolerancesScale(),
		Scene: DefaultSceneConfig(),
	}
}

// DefaultSceneConfig returns gravity (0, -9.81, 0) and 2 workers.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{Gravity: DefaultGravity, Workers: DefaultWorkers}
}

// DefaultDebugConfig returns the conventional local debugger endpoint.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{Host: DefaultDebugHost, Port: DefaultDebugPort, Timeout: DefaultDebugWait}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !(c.Scale.Length > 0) || !(c.Scale.Speed > 0) {
		return fmt.Errorf("tolerances scale must be positive, got %+v", c.Scale)
	}
	if err := c.Scene.Validate(); err != nil {
		return err
	}
	if c.Debug != nil {
		return c.Debug.Validate()
	}
	return nil
}

// Validate checks the scene configuration.
func (c SceneConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("scene workers must be at least 1, got %d", c.Workers)
	}
	if !c.Gravity.Finite() {
		return fmt.Errorf("gravity must be finite, got %+v", c.Gravity)
	}
	return nil
}

// Validate checks the debugger endpoint.
func (c DebugConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("debugger host is empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("debugger port %d out of range", c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("debugger timeout is negative")
	}
	return nil
}

func (c DebugConfig) endpoint() native.DebugEndpoint {
	return native.DebugEndpoint{Host: c.Host, Port: c.Port, Timeout: c.Timeout}
}
