package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hexlight/internal/config"
)

const css = "a { color: #ff0000; }\nb { color: rgb(0, 0, 255); }\n"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNotations(t *testing.T) {
	out, _, err := execute(t, "notations")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "1. hex        on", lines[0])
	assert.Equal(t, "7. tailwind   off", lines[6])
	assert.Equal(t, "8. custom     off", lines[7])
}

func TestNotations_ConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "hexlight.toml", "enable_tailwind = true\nenable_hex = false\n")

	out, _, err := execute(t, "--config", cfgPath, "notations")
	require.NoError(t, err)
	assert.Contains(t, out, "1. hex        off")
	assert.Contains(t, out, "7. tailwind   on")
}

func TestNotations_YAMLCustomColors(t *testing.T) {
	cfgPath := writeFile(t, "hexlight.yaml", "custom_colors:\n  - label: brand\n    color: \"#123456\"\n")

	out, _, err := execute(t, "-c", cfgPath, "notations")
	require.NoError(t, err)
	assert.Contains(t, out, "8. custom     on")
}

func TestNotations_Env(t *testing.T) {
	t.Setenv("HEXLIGHT_ENABLE_TAILWIND", "true")

	out, _, err := execute(t, "notations")
	require.NoError(t, err)
	assert.Contains(t, out, "7. tailwind   on")
}

func TestConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	out, errOut, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "notations")
	require.NoError(t, err)
	assert.Contains(t, errOut, "none.toml")
	assert.Contains(t, out, "1. hex        on")
}

func TestConfig_InvalidValueWarns(t *testing.T) {
	cfgPath := writeFile(t, "hexlight.toml", "render = \"sparkles\"\n")

	_, errOut, err := execute(t, "--config", cfgPath, "notations")
	require.NoError(t, err)
	assert.Contains(t, errOut, "config:")
	assert.Contains(t, errOut, "render")
}

func TestScan_Report(t *testing.T) {
	path := writeFile(t, "main.css", css)

	out, _, err := execute(t, "scan", path)
	require.NoError(t, err)

	plain := ansi.Strip(out)
	lines := strings.Split(strings.TrimSpace(plain), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], ":1:12")
	assert.Contains(t, lines[0], "#ff0000")
	assert.Contains(t, lines[0], "HexlightBackground_ff0000")
	assert.Contains(t, lines[1], "rgb(0, 0, 255)")
	assert.Contains(t, lines[1], "HexlightBackground_0000ff")
}

func TestScan_RenderFlag(t *testing.T) {
	path := writeFile(t, "main.css", css)

	out, _, err := execute(t, "--render", "foreground", "scan", path)
	require.NoError(t, err)
	assert.Contains(t, out, "HexlightForeground_ff0000")
}

func TestScan_Preview(t *testing.T) {
	path := writeFile(t, "main.css", css)

	out, _, err := execute(t, "scan", "--preview", "--line-numbers", path)
	require.NoError(t, err)
	assert.Equal(t, "1 a { color: #ff0000; }\n2 b { color: rgb(0, 0, 255); }\n", ansi.Strip(out))
}

func TestScan_UnreadableFiles(t *testing.T) {
	good := writeFile(t, "main.css", css)
	missing := filepath.Join(t.TempDir(), "missing.css")

	out, errOut, err := execute(t, "scan", missing, good)
	require.NoError(t, err)
	assert.Contains(t, errOut, "missing.css")
	assert.Contains(t, out, "#ff0000")

	_, _, err = execute(t, "scan", missing)
	require.Error(t, err)
}

func TestScan_RequiresFile(t *testing.T) {
	_, _, err := execute(t, "scan")
	require.Error(t, err)
}

func TestLua(t *testing.T) {
	path := writeFile(t, "main.css", css)
	script := writeFile(t, "off.lua", `
		for _, doc in ipairs(arg) do
			hexlight.clear(doc)
		end
	`)

	out, _, err := execute(t, "lua", script, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(path)+": 0 decorations\n", out)

	refresh := writeFile(t, "on.lua", `hexlight.refresh(arg[1], true)`)
	out, _, err = execute(t, "lua", refresh, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(path)+": 2 decorations\n", out)
}

func TestLua_ScriptError(t *testing.T) {
	script := writeFile(t, "bad.lua", `error("boom")`)
	_, _, err := execute(t, "lua", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDebugLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	path := writeFile(t, "main.css", css)

	_, _, err := execute(t, "--debug", "--log", logPath, "scan", path)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestView(t *testing.T) {
	path := writeFile(t, "main.css", css)
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 6)
	t.Cleanup(screen.Fini)

	c := &cli{cfg: config.Defaults()}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- c.view(context.Background(), screen, path, true) }()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not quit")
	}

	_, _, style, _ := screen.GetContent(11, 0) //nolint:staticcheck // GetContent is the correct API
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), bg)
}
