// Package luaapi exposes the hexlight controller to Lua scripts as the
// "hexlight" module.
//
//	local hl = require("hexlight")
//	hl.command("toggle")
//	hl.refresh("main.css", true)
//	local glyph, group = hl.format("#ff0000")
package luaapi

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hexlight/internal/engine"
	"github.com/dshills/hexlight/internal/log"
)

// ModuleName is the name scripts require.
const ModuleName = "hexlight"

// Module implements the hexlight Lua API.
type Module struct {
	ctrl *engine.Controller
}

// New creates the module for ctrl.
func New(ctrl *engine.Controller) *Module {
	return &Module{ctrl: ctrl}
}

// Register makes the module available through require and as a global.
func (m *Module) Register(L *lua.LState) {
	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(m.table(L))
		return 1
	})
	L.SetGlobal(ModuleName, m.table(L))
}

func (m *Module) table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"turn_on":   m.turnOn,
		"turn_off":  m.turnOff,
		"toggle":    m.toggle,
		"is_active": m.isActive,
		"command":   m.command,
		"refresh":   m.refresh,
		"clear":     m.clear,
		"highlight": m.highlight,
		"format":    m.format,
	})
	return mod
}

// luaContext returns the state's context, or Background when none is set.
func luaContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// turn_on() -> nil
func (m *Module) turnOn(L *lua.LState) int {
	if err := m.ctrl.TurnOn(luaContext(L)); err != nil {
		L.RaiseError("turn_on: %v", err)
	}
	return 0
}

// turn_off() -> nil
func (m *Module) turnOff(L *lua.LState) int {
	if err := m.ctrl.TurnOff(luaContext(L)); err != nil {
		L.RaiseError("turn_off: %v", err)
	}
	return 0
}

// toggle() -> bool
// Returns the new state.
func (m *Module) toggle(L *lua.LState) int {
	on, err := m.ctrl.Toggle(luaContext(L))
	if err != nil {
		L.RaiseError("toggle: %v", err)
		return 0
	}
	L.Push(lua.LBool(on))
	return 1
}

// is_active() -> bool
func (m *Module) isActive(L *lua.LState) int {
	L.Push(lua.LBool(m.ctrl.Enabled()))
	return 1
}

// command(arg) -> bool
// Accepts "on", "off" or "toggle" in any case; false for anything else.
func (m *Module) command(L *lua.LState) int {
	arg := L.CheckString(1)
	L.Push(lua.LBool(m.ctrl.Command(luaContext(L), arg)))
	return 1
}

// refresh(doc, clear_first?) -> nil
func (m *Module) refresh(L *lua.LState) int {
	doc := L.CheckString(1)
	clearFirst := L.OptBool(2, false)
	if err := m.ctrl.Refresh(luaContext(L), doc, clearFirst); err != nil {
		L.RaiseError("refresh: %v", err)
	}
	return 0
}

// clear(doc) -> nil
func (m *Module) clear(L *lua.LState) int {
	doc := L.CheckString(1)
	if err := m.ctrl.Clear(luaContext(L), doc); err != nil {
		L.RaiseError("clear: %v", err)
	}
	return 0
}

// highlight(doc, min_row, max_row) -> nil
// Rows are 1-based and inclusive, as is usual in Lua.
func (m *Module) highlight(L *lua.LState) int {
	doc := L.CheckString(1)
	minRow := L.CheckInt(2)
	maxRow := L.CheckInt(3)
	if minRow < 1 {
		L.ArgError(2, "row must be >= 1")
		return 0
	}
	if err := m.ctrl.Highlight(luaContext(L), doc, minRow-1, maxRow-1); err != nil {
		L.RaiseError("highlight: %v", err)
	}
	return 0
}

// format(documentation) -> glyph, group | nil
func (m *Module) format(L *lua.LState) int {
	doc := L.CheckString(1)
	f, ok := m.ctrl.FormatCompletionItem(doc)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(f.Glyph))
	L.Push(lua.LString(f.Group))
	return 2
}

// Run executes a script file with the module registered. Script output
// from print goes wherever the state's stdout goes.
func Run(ctx context.Context, ctrl *engine.Controller, path string, args ...string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	New(ctrl).Register(L)

	argv := L.NewTable()
	for _, a := range args {
		argv.Append(lua.LString(a))
	}
	L.SetGlobal("arg", argv)

	log.Info(log.CatLua, "running script", "path", path)
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("lua %s: %w", path, err)
	}
	return nil
}
