package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type recordedCommand struct {
	name string
	args []string
}

// fakeSetupEnv finds the CLI binaries in bins and the paths in dirs, and
// records commands instead of running them.
func fakeSetupEnv(input string, bins, dirs []string) (*setupEnv, *bytes.Buffer, *[]recordedCommand) {
	out := &bytes.Buffer{}
	var ran []recordedCommand
	env := &setupEnv{
		in:  bufio.NewScanner(strings.NewReader(input)),
		out: out,
		lookPath: func(name string) (string, error) {
			for _, b := range bins {
				if b == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", exec.ErrNotFound
		},
		stat: func(name string) (os.FileInfo, error) {
			for _, d := range dirs {
				if d == name {
					return nil, nil
				}
			}
			return nil, os.ErrNotExist
		},
		run: func(name string, args ...string) error {
			ran = append(ran, recordedCommand{name: name, args: args})
			return nil
		},
	}
	return env, out, &ran
}

func readServers(t *testing.T, path, key string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var config map[string]any
	require.NoError(t, json.Unmarshal(data, &config))
	servers, ok := config[key].(map[string]any)
	require.True(t, ok, "missing %q in %s", key, path)
	return servers
}

// --- JSON merge tests ---

func TestMergeServerEntry_EmptyFile(t *testing.T) {
	out, err := mergeServerEntry(nil, "mcpServers", serverEntry(nil, nil))
	require.NoError(t, err)
	require.NotNil(t, out)

	var config map[string]any
	require.NoError(t, json.Unmarshal(out, &config))

	entry := config["mcpServers"].(map[string]any)["cewrap"].(map[string]any)
	assert.Equal(t, "cewrap", entry["command"])
	assert.Equal(t, []any{"serve"}, entry["args"])
}

func TestMergeServerEntry_ExistingServers(t *testing.T) {
	existing := []byte(`{"mcpServers": {"other-server": {"command": "other", "args": ["start"]}}}`)
	out, err := mergeServerEntry(existing, "mcpServers", serverEntry(nil, nil))
	require.NoError(t, err)

	var config map[string]any
	require.NoError(t, json.Unmarshal(out, &config))
	servers := config["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "other-server")
	assert.Contains(t, servers, "cewrap")
}

func TestMergeServerEntry_AlreadyConfigured(t *testing.T) {
	existing := []byte(`{"mcpServers": {"cewrap": {"command": "cewrap", "args": ["serve"]}}}`)
	out, err := mergeServerEntry(existing, "mcpServers", serverEntry(nil, nil))
	assert.NoError(t, err)
	assert.Nil(t, out, "should return nil when already configured")
}

func TestMergeServerEntry_InvalidJSON(t *testing.T) {
	_, err := mergeServerEntry([]byte("not json"), "mcpServers", serverEntry(nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestMergeServerEntry_TrailingNewline(t *testing.T) {
	out, err := mergeServerEntry(nil, "mcpServers", serverEntry(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestServerEntry_ServeArgsAndExtra(t *testing.T) {
	entry := serverEntry([]string{"--manifest", "dist/custom-elements.json"}, map[string]string{"type": "stdio"})
	assert.Equal(t, []any{"serve", "--manifest", "dist/custom-elements.json"}, entry["args"])
	assert.Equal(t, "stdio", entry["type"])
}

func TestCLIAddArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"mcp", "add", "--scope", "user", "cewrap", "--", "cewrap", "serve", "--config", "cewrap.toml"},
		cliAddArgs("user", []string{"--config", "cewrap.toml"}))
	assert.Equal(t,
		[]string{"mcp", "add", "cewrap", "--", "cewrap", "serve"},
		cliAddArgs("", nil))
}

func TestParseSetupFlags(t *testing.T) {
	opts, err := parseSetupFlags([]string{"--auto", "--manifest", "m.json"})
	require.NoError(t, err)
	assert.True(t, opts.auto)
	assert.Equal(t, []string{"--manifest", "m.json"}, opts.serveArgs)
}

// --- Prompt tests ---

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "\n", want: true},
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "", want: true},
	}
	for _, tc := range tests {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			assert.Equal(t, tc.want, promptYesNo(bufio.NewScanner(strings.NewReader(tc.input)), &bytes.Buffer{}, "Continue?"))
		})
	}
}

func TestPromptScope(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1\n", want: "project"},
		{input: "2\n", want: "user"},
		{input: "3\n", want: ""},
		{input: "\n", want: "project"},
		{input: "", want: "project"},
	}
	for _, tc := range tests {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			assert.Equal(t, tc.want, promptScope(bufio.NewScanner(strings.NewReader(tc.input)), &bytes.Buffer{}, "Claude Code"))
		})
	}
}

// --- Detection tests ---

func TestDetect_CLIOnPath(t *testing.T) {
	t.Chdir(t.TempDir())
	env, _, _ := fakeSetupEnv("", []string{"claude"}, nil)

	detected := env.detect()
	require.Len(t, detected, 1)
	assert.Equal(t, "claude_code", detected[0].Def.ID)
	assert.False(t, detected[0].AlreadySetup)
}

func TestDetect_CLIAlreadyConfigured(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, ".mcp.json", `{"mcpServers": {"cewrap": {"command": "cewrap"}}}`)
	env, _, _ := fakeSetupEnv("", []string{"codex"}, nil)

	detected := env.detect()
	require.Len(t, detected, 1)
	assert.True(t, detected[0].AlreadySetup)
}

func TestDetect_NoneDetected(t *testing.T) {
	env, _, _ := fakeSetupEnv("", nil, nil)
	assert.Empty(t, env.detect())
}

func TestDetect_FileBasedAgent(t *testing.T) {
	env, _, _ := fakeSetupEnv("", nil, []string{".vscode"})

	detected := env.detect()
	require.Len(t, detected, 1)
	assert.Equal(t, "vscode_copilot", detected[0].Def.ID)
	assert.Equal(t, filepath.Join(".vscode", "mcp.json"), detected[0].ConfigPath)
}

func TestDetect_ConfigDirAgent(t *testing.T) {
	desktop := claudeDesktopConfigPath()
	env, _, _ := fakeSetupEnv("", nil, []string{filepath.Dir(desktop)})

	detected := env.detect()
	require.Len(t, detected, 1)
	assert.Equal(t, "claude_desktop", detected[0].Def.ID)
	assert.Equal(t, desktop, detected[0].ConfigPath)
}

// --- Orchestration tests ---

func TestExecute_NoAgents(t *testing.T) {
	env, out, _ := fakeSetupEnv("", nil, nil)
	env.execute(setupOptions{})
	assert.Contains(t, out.String(), "No supported AI agents detected.")
}

func TestExecute_AutoModeFileAgent(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(".vscode", 0755))

	env, out, _ := fakeSetupEnv("", nil, nil)
	env.stat = func(name string) (os.FileInfo, error) {
		// Keep the user's global agent configs out of the test.
		if filepath.IsAbs(name) {
			return nil, os.ErrNotExist
		}
		return os.Stat(name)
	}
	env.execute(setupOptions{auto: true, serveArgs: []string{"--manifest", "dist/custom-elements.json"}})

	entry := readServers(t, filepath.Join(".vscode", "mcp.json"), "servers")["cewrap"].(map[string]any)
	assert.Equal(t, "cewrap", entry["command"])
	assert.Equal(t, "stdio", entry["type"])
	assert.Equal(t, []any{"serve", "--manifest", "dist/custom-elements.json"}, entry["args"])
	assert.Contains(t, out.String(), "VS Code Copilot configured")
}

func TestExecute_CLIAgentWithScope(t *testing.T) {
	t.Chdir(t.TempDir())
	env, out, ran := fakeSetupEnv("y\n2\n", []string{"claude"}, nil)
	env.execute(setupOptions{})

	require.Len(t, *ran, 1)
	assert.Equal(t, "claude", (*ran)[0].name)
	assert.Equal(t, cliAddArgs("user", nil), (*ran)[0].args)
	assert.Contains(t, out.String(), "Claude Code configured (scope: user)")
}

func TestExecute_CLIAgentFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	env, out, _ := fakeSetupEnv("", []string{"codex"}, nil)
	env.run = func(string, ...string) error { return errors.New("exit status 1") }
	env.execute(setupOptions{auto: true})

	assert.Contains(t, out.String(), "! OpenAI Codex: failed: exit status 1")
}

func TestExecute_Declined(t *testing.T) {
	t.Chdir(t.TempDir())
	env, out, ran := fakeSetupEnv("n\n", []string{"claude"}, nil)
	env.execute(setupOptions{})

	assert.Empty(t, *ran)
	assert.NotContains(t, out.String(), "configured")
}

func TestConfigureFile_CreatesAndMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "mcp.json")
	require.NoError(t, configureFile(agentDef{ServersKey: "mcpServers"}, path, nil))
	assert.Contains(t, readServers(t, path, "mcpServers"), "cewrap")
}

func TestConfigureFile_MergesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp.json")
	writeFile(t, path, `{"mcpServers": {"other": {"command": "other"}}}`)

	require.NoError(t, configureFile(agentDef{ServersKey: "mcpServers"}, path, nil))
	servers := readServers(t, path, "mcpServers")
	assert.Contains(t, servers, "other", "original server should be preserved")
	assert.Contains(t, servers, "cewrap")
}
