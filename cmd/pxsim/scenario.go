package main

import (
	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/px"
)

type simConfig struct {
	steps       int
	dt          float32
	height      float32
	radius      float32
	restitution float32
	workers     int
	gravity     float32
	pvd         bool
}

type sample struct {
	step int
	t    float32
	y    float32
	vy   float32
}

// scenario is a sphere dropped onto a ground plane.
type scenario struct {
	b      *px.Binding
	scene  px.SceneHandle
	ball   px.ActorHandle
	cfg    simConfig
	step   int
	lowest float32
}

func newScenario(b *px.Binding, cfg simConfig) (*scenario, error) {
	f, err := b.CreateFoundation()
	if err != nil {
		return nil, err
	}
	d := px.NullDebugConnector
	if cfg.pvd {
		if d, err = b.CreateDefaultDebugConnector(f); err != nil {
			return nil, err
		}
		if ok, err := b.ConnectDebugger(d); err != nil {
			return nil, err
		} else if !ok {
			px.Logger().Sugar().Warnf("no visual debugger reachable")
		}
	}
	e, err := b.CreatePhysics(f, d)
	if err != nil {
		return nil, err
	}
	s, err := b.CreateDefaultScene(e)
	if err != nil {
		return nil, err
	}
	m, err := b.CreateMaterial(e, 0.5, 0.5, cfg.restitution)
	if err != nil {
		return nil, err
	}

	ground, err := b.CreatePlane(e, layout.Planef{N: layout.Vec3f{Y: 1}}, m)
	if err != nil {
		return nil, err
	}
	if err := b.AddActor(s, ground); err != nil {
		return nil, err
	}

	ball, err := b.CreateRigidDynamic(e, layout.TransformAt(layout.Vec3f{Y: cfg.height}))
	if err != nil {
		return nil, err
	}
	g, err := b.CreateSphereGeometry(cfg.radius)
	if err != nil {
		return nil, err
	}
	sh, err := b.CreateShape(e, g, m, true)
	if err != nil {
		return nil, err
	}
	if _, err := b.AttachShape(ball, sh); err != nil {
		return nil, err
	}
	if err := b.AddActor(s, ball); err != nil {
		return nil, err
	}
	return &scenario{b: b, scene: s, ball: ball, cfg: cfg, lowest: cfg.height}, nil
}

func (sc *scenario) finished() bool { return sc.step >= sc.cfg.steps }

func (sc *scenario) progress() float64 {
	if sc.cfg.steps == 0 {
		return 1
	}
	return float64(sc.step) / float64(sc.cfg.steps)
}

// advance runs one step and samples the ball.
func (sc *scenario) advance() (sample, error) {
	if err := sc.b.Advance(sc.scene, sc.cfg.dt); err != nil {
		return sample{}, err
	}
	sc.step++
	return sc.sample()
}

func (sc *scenario) sample() (sample, error) {
	pose, err := sc.b.ActorGlobalPose(sc.ball)
	if err != nil {
		return sample{}, err
	}
	v, err := sc.b.LinearVelocity(sc.ball)
	if err != nil {
		return sample{}, err
	}
	sc.lowest = min(sc.lowest, pose.P.Y)
	return sample{
		step: sc.step,
		t:    float32(sc.step) * sc.cfg.dt,
		y:    pose.P.Y,
		vy:   v.Y,
	}, nil
}
