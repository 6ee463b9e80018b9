package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binaryPath is set by TestMain after building the binary.
var binaryPath string

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	tmp, err := os.MkdirTemp("", "cewrap-integration-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmp, "cewrap")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// --- helpers ---

func skipIfNotIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run integration tests")
	}
}

// startServer launches `cewrap serve` over the fixture manifest and returns
// an initialized MCP client.
func startServer(t *testing.T, extraArgs ...string) *client.Client {
	t.Helper()

	args := append([]string{
		"serve",
		"--manifest", filepath.Join("testdata", "custom-elements.json"),
		"--config", filepath.Join("testdata", "cewrap.toml"),
	}, extraArgs...)
	c, err := client.NewStdioMCPClient(binaryPath, nil, args...)
	require.NoError(t, err, "failed to start MCP server")
	t.Cleanup(func() { c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "cewrap-integration-test",
		Version: "1.0.0",
	}

	result, err := c.Initialize(ctx, initReq)
	require.NoError(t, err, "failed to initialize MCP session")
	assert.Equal(t, "cewrap", result.ServerInfo.Name)

	return c
}

func callToolHelper(t *testing.T, c *client.Client, toolName string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = toolName
	if args != nil {
		req.Params.Arguments = args
	}

	result, err := c.CallTool(ctx, req)
	require.NoError(t, err, "CallTool(%s) failed", toolName)
	return result
}

func extractText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "expected content in result")
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- integration tests ---

func TestIntegration_ListTools(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_components", "get_component_api", "preview_wrapper"}, names)
}

func TestIntegration_ListComponents(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	result := callToolHelper(t, c, "list_components", nil)
	assert.False(t, result.IsError)

	var comps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(extractText(t, result)), &comps))
	require.Len(t, comps, 2)
	assert.Equal(t, "MyButton", comps[0]["class_name"])
}

func TestIntegration_GetComponentAPI(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	t.Run("existing component", func(t *testing.T) {
		result := callToolHelper(t, c, "get_component_api", map[string]any{"class_name": "MyButton"})
		require.False(t, result.IsError, extractText(t, result))

		var api map[string]any
		require.NoError(t, json.Unmarshal([]byte(extractText(t, result)), &api))
		assert.Equal(t, "../dist/my-button.js", api["module_path"])
		assert.Contains(t, api, "attributes")
		assert.Contains(t, api, "events")
	})

	t.Run("unknown component", func(t *testing.T) {
		result := callToolHelper(t, c, "get_component_api", map[string]any{"class_name": "Nope"})
		assert.True(t, result.IsError)
	})
}

func TestIntegration_PreviewWrapper(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	result := callToolHelper(t, c, "preview_wrapper", map[string]any{"class_name": "MyButton", "part": "types"})
	require.False(t, result.IsError, extractText(t, result))
	text := extractText(t, result)
	assert.Contains(t, text, "export interface MyButtonProps")
	assert.Contains(t, text, "export type MyButtonElementEvent")
	assert.Contains(t, text, "onCustomFocus?: (event: FocusEvent) => void;")
}

func TestIntegration_ToolCallLog(t *testing.T) {
	skipIfNotIntegration(t)
	logPath := filepath.Join(t.TempDir(), "mcp.jsonl")
	c := startServer(t, "--log", logPath)

	callToolHelper(t, c, "list_components", map[string]any{"filter": "My*"})

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		return err == nil && len(data) > 0
	}, 5*time.Second, 50*time.Millisecond)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "list_components", entry["tool"])
}
