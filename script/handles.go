package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/px"
)

// Userdata type names.
const (
	foundationType = "px.foundation"
	debugType      = "px.debug_connector"
	engineType     = "px.engine"
	sceneType      = "px.scene"
	materialType   = "px.material"
	actorType      = "px.actor"
	shapeType      = "px.shape"
	geometryType   = "px.geometry"
	stepType       = "px.step"
	errorType      = "px.error"
)

func typeName(h px.Handle) string {
	switch h.(type) {
	case px.FoundationHandle:
		return foundationType
	case px.DebugConnectorHandle:
		return debugType
	case px.EngineHandle:
		return engineType
	case px.SceneHandle:
		return sceneType
	case px.MaterialHandle:
		return materialType
	case px.ActorHandle:
		return actorType
	case px.ShapeHandle:
		return shapeType
	case px.GeometryHandle:
		return geometryType
	}
	return "px.handle"
}

func (r *Runtime) registerTypes() {
	L := r.L
	common := map[string]lua.LGFunction{
		"id":      r.handleID,
		"release": r.handleRelease,
		"valid":   r.handleValid,
	}
	kinds := map[string]map[string]lua.LGFunction{
		foundationType: nil,
		engineType:     nil,
		debugType:      r.debugMethods(),
		sceneType:      r.sceneMethods(),
		materialType:   r.materialMethods(),
		actorType:      r.actorMethods(),
		shapeType:      r.shapeMethods(),
		geometryType:   r.geometryMethods(),
	}
	for name, methods := range kinds {
		mt := L.NewTypeMetatable(name)
		index := L.SetFuncs(L.NewTable(), common)
		L.SetFuncs(index, methods)
		L.SetField(mt, "__index", index)
		L.SetField(mt, "__tostring", L.NewFunction(handleString))
		L.SetField(mt, "__eq", L.NewFunction(handleEqual))
	}

	mt := L.NewTypeMetatable(stepType)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), r.stepMethods()))

	mt = L.NewTypeMetatable(errorType)
	L.SetField(mt, "__index", L.NewFunction(errorIndex))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(checkError(L, 1).Error()))
		return 1
	}))
}

func pushHandle(L *lua.LState, h px.Handle) {
	ud := L.NewUserData()
	ud.Value = h
	L.SetMetatable(ud, L.GetTypeMetatable(typeName(h)))
	L.Push(ud)
}

// pushOptional pushes nil for a null handle.
func pushOptional(L *lua.LState, h px.Handle) {
	if h.Raw() == 0 {
		L.Push(lua.LNil)
		return
	}
	pushHandle(L, h)
}

func checkHandle[H px.Handle](L *lua.LState, n int, what string) H {
	ud := L.CheckUserData(n)
	h, ok := ud.Value.(H)
	if !ok {
		L.ArgError(n, what+" expected")
	}
	return h
}

func checkAny(L *lua.LState, n int) px.Handle {
	ud := L.CheckUserData(n)
	h, ok := ud.Value.(px.Handle)
	if !ok {
		L.ArgError(n, "handle expected")
	}
	return h
}

// raise throws err as a px.error value.
func (r *Runtime) raise(L *lua.LState, err error) {
	ud := L.NewUserData()
	ud.Value = err
	L.SetMetatable(ud, L.GetTypeMetatable(errorType))
	L.Error(ud, 1)
}

func (r *Runtime) check(L *lua.LState, err error) {
	if err != nil {
		r.raise(L, err)
	}
}

func checkError(L *lua.LState, n int) error {
	ud := L.CheckUserData(n)
	err, ok := ud.Value.(error)
	if !ok {
		L.ArgError(n, "px.error expected")
	}
	return err
}

func errorIndex(L *lua.LState) int {
	err := checkError(L, 1)
	switch L.CheckString(2) {
	case "kind":
		L.Push(lua.LString(errors.KindOf(err)))
	case "message":
		L.Push(lua.LString(err.Error()))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

func handleString(L *lua.LState) int {
	h := checkAny(L, 1)
	L.Push(lua.LString(fmt.Sprintf("%s(%#x)", typeName(h), h.Raw())))
	return 1
}

func handleEqual(L *lua.LState) int {
	a, b := checkAny(L, 1), checkAny(L, 2)
	L.Push(lua.LBool(a.Raw() == b.Raw() && typeName(a) == typeName(b)))
	return 1
}

func (r *Runtime) handleID(L *lua.LState) int {
	L.Push(lua.LNumber(checkAny(L, 1).Raw()))
	return 1
}

func (r *Runtime) handleRelease(L *lua.LState) int {
	r.check(L, r.b.Release(checkAny(L, 1)))
	return 0
}

func (r *Runtime) handleValid(L *lua.LState) int {
	L.Push(lua.LBool(r.b.Valid(checkAny(L, 1))))
	return 1
}
