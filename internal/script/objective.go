// Package script runs stage objective scripts on an embedded Lua VM.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

const reachedFn = "reached"

// Objective is a sim.Objective backed by a Lua function
//
//	reached(x, z, generation, time) -> bool
//
// Single-goroutine access only (the world's tick).
type Objective struct {
	vm     *lua.LState
	log    *zap.Logger
	failed bool // a runtime error has been logged at Warn already
}

// NewObjective compiles a stage's objective chunk. The chunk must define a
// global reached function.
func NewObjective(src string, log *zap.Logger) (*Objective, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	o := &Objective{vm: vm, log: log}
	vm.SetGlobal("log", vm.NewFunction(o.luaLog))

	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load objective: %w", err)
	}
	if _, ok := vm.GetGlobal(reachedFn).(*lua.LFunction); !ok {
		vm.Close()
		return nil, fmt.Errorf("load objective: no %s function", reachedFn)
	}
	return o, nil
}

// luaLog lets scripts write to the game log: log("text").
func (o *Objective) luaLog(L *lua.LState) int {
	o.log.Info("objective script", zap.String("msg", L.CheckString(1)))
	return 0
}

// Reached calls the script. Runtime errors are logged and read as false.
func (o *Objective) Reached(pos sim.Vec3, clock sim.Timeloop) bool {
	fn := o.vm.GetGlobal(reachedFn)
	if err := o.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(pos.X), lua.LNumber(pos.Z), lua.LNumber(clock.Generation), lua.LNumber(clock.CurrentTime)); err != nil {
		if !o.failed {
			o.log.Warn("lua reached error", zap.Error(err))
			o.failed = true
		} else {
			o.log.Debug("lua reached error", zap.Error(err))
		}
		return false
	}
	ret := o.vm.Get(-1)
	o.vm.Pop(1)
	return lua.LVAsBool(ret)
}

// Close releases the VM.
func (o *Objective) Close() {
	o.vm.Close()
}
