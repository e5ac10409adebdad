package luaapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/decoration"
	"github.com/dshills/hexlight/internal/engine"
	"github.com/dshills/hexlight/internal/workspace"
)

const css = ".a { color: #ff0000; }\n.b { color: rgb(0, 255, 0); }\n.c { color: blue; }\n"

func setup(t *testing.T) (*lua.LState, *engine.Controller, *decoration.Store) {
	t.Helper()
	ws := workspace.New(nil)
	require.NoError(t, ws.Add(context.Background(), "main.css", css))
	ns := decoration.NewStore()
	ctrl := engine.New(config.Defaults(), ws, ns)
	t.Cleanup(ctrl.Close)

	L := lua.NewState()
	t.Cleanup(L.Close)
	New(ctrl).Register(L)
	return L, ctrl, ns
}

func TestCommand_Toggle(t *testing.T) {
	L, ctrl, _ := setup(t)
	require.True(t, ctrl.Enabled())

	require.NoError(t, L.DoString(`ok = hexlight.command("TOGGLE")`))
	assert.Equal(t, lua.LTrue, L.GetGlobal("ok"))
	assert.False(t, ctrl.Enabled())

	require.NoError(t, L.DoString(`bad = hexlight.command("sideways")`))
	assert.Equal(t, lua.LFalse, L.GetGlobal("bad"))
	assert.False(t, ctrl.Enabled())
}

func TestOnOff(t *testing.T) {
	L, ctrl, _ := setup(t)

	require.NoError(t, L.DoString(`
		hexlight.turn_off()
		off = hexlight.is_active()
		hexlight.turn_on()
		on = hexlight.is_active()
		flipped = hexlight.toggle()
	`))
	assert.Equal(t, lua.LFalse, L.GetGlobal("off"))
	assert.Equal(t, lua.LTrue, L.GetGlobal("on"))
	assert.Equal(t, lua.LFalse, L.GetGlobal("flipped"))
	assert.False(t, ctrl.Enabled())
}

func TestRefreshAndClear(t *testing.T) {
	L, _, ns := setup(t)

	require.NoError(t, L.DoString(`hexlight.refresh("main.css", true)`))
	assert.Equal(t, 3, ns.Count("main.css"))

	require.NoError(t, L.DoString(`hexlight.clear("main.css")`))
	assert.Equal(t, 0, ns.Count("main.css"))
}

func TestHighlight_OneBasedRows(t *testing.T) {
	L, _, ns := setup(t)

	require.NoError(t, L.DoString(`hexlight.highlight("main.css", 1, 1)`))
	// the window is widened by the row offset, so every row is covered
	assert.Equal(t, 3, ns.Count("main.css"))

	err := L.DoString(`hexlight.highlight("main.css", 0, 1)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row must be >= 1")
}

func TestRefresh_UnknownDocumentIsNoop(t *testing.T) {
	L, _, _ := setup(t)
	require.NoError(t, L.DoString(`hexlight.refresh("missing.css")`))
}

func TestHighlight_UnknownDocumentRaises(t *testing.T) {
	L, _, _ := setup(t)
	err := L.DoString(`hexlight.highlight("missing.css", 1, 2)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "highlight:")
}

func TestFormat(t *testing.T) {
	L, _, _ := setup(t)

	require.NoError(t, L.DoString(`
		glyph, group = hexlight.format("#ff0000")
		none = hexlight.format("plain text")
	`))
	assert.Equal(t, "■", L.GetGlobal("glyph").String())
	assert.Equal(t, "HexlightForeground_ff0000", L.GetGlobal("group").String())
	assert.Equal(t, lua.LNil, L.GetGlobal("none"))
}

func TestRequire(t *testing.T) {
	L, _, _ := setup(t)
	require.NoError(t, L.DoString(`
		local hl = require("hexlight")
		active = hl.is_active()
	`))
	assert.Equal(t, lua.LTrue, L.GetGlobal("active"))
}

func TestRun(t *testing.T) {
	ws := workspace.New(nil)
	require.NoError(t, ws.Add(context.Background(), "main.css", css))
	ns := decoration.NewStore()
	ctrl := engine.New(config.Defaults(), ws, ns)
	defer ctrl.Close()

	script := filepath.Join(t.TempDir(), "refresh.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
		for _, doc in ipairs(arg) do
			hexlight.refresh(doc, true)
		end
	`), 0o600))

	require.NoError(t, Run(context.Background(), ctrl, script, "main.css"))
	assert.Equal(t, 3, ns.Count("main.css"))

	err := Run(context.Background(), ctrl, filepath.Join(t.TempDir(), "nope.lua"))
	require.Error(t, err)
}
