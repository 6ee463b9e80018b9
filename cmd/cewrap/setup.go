package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// serverName is the key cewrap is registered under in agent configs.
const serverName = "cewrap"

// agentKind is how an agent is configured.
type agentKind int

const (
	agentCLI  agentKind = iota // `<binary> mcp add ...`
	agentFile                  // merged into a JSON config file
)

// agentDef defines how to detect and configure one AI agent.
type agentDef struct {
	ID          string
	DisplayName string
	Kind        agentKind
	Binary      string            // CLI agents: binary name on PATH
	DirMarkers  []string          // file agents: project dirs that indicate presence
	ConfigPath  func() string     // file agents: resolved config path
	ServersKey  string            // "servers" (VS Code) or "mcpServers"
	NeedsScope  bool              // CLI agents: ask for project/user scope
	ExtraFields map[string]string // extra entry fields, e.g. "type": "stdio"
}

// agentRegistry lists all supported agents in display order.
var agentRegistry = []agentDef{
	{ID: "claude_code", DisplayName: "Claude Code", Kind: agentCLI, Binary: "claude", NeedsScope: true},
	{ID: "openai_codex", DisplayName: "OpenAI Codex", Kind: agentCLI, Binary: "codex", NeedsScope: true},
	{
		ID: "vscode_copilot", DisplayName: "VS Code Copilot", Kind: agentFile,
		DirMarkers:  []string{".vscode"},
		ConfigPath:  func() string { return filepath.Join(".vscode", "mcp.json") },
		ServersKey:  "servers",
		ExtraFields: map[string]string{"type": "stdio"},
	},
	{
		ID: "cursor", DisplayName: "Cursor", Kind: agentFile,
		DirMarkers: []string{".cursor"},
		ConfigPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		ServersKey: "mcpServers",
	},
	{
		ID: "claude_desktop", DisplayName: "Claude Desktop", Kind: agentFile,
		ConfigPath: claudeDesktopConfigPath,
		ServersKey: "mcpServers",
	},
}

// claudeDesktopConfigPath returns the OS-specific Claude Desktop config path.
func claudeDesktopConfigPath() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}

// detectedAgent is an agent found on the system.
type detectedAgent struct {
	Def          agentDef
	AlreadySetup bool
	ConfigPath   string // file agents only
}

// setupEnv is the system surface setup touches. Tests replace it.
type setupEnv struct {
	in       *bufio.Scanner
	out      io.Writer
	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
	run      func(name string, args ...string) error
}

func defaultSetupEnv() *setupEnv {
	return &setupEnv{
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		lookPath: exec.LookPath,
		stat:     os.Stat,
		run: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
	}
}

// setupOptions holds parsed flags for the setup command.
type setupOptions struct {
	auto bool
	// serveArgs are appended to `cewrap serve` in the registered command.
	serveArgs []string
}

// runSetup is the entry point for `cewrap setup`.
func runSetup(args []string) error {
	opts, err := parseSetupFlags(args)
	if err != nil {
		return err
	}
	defaultSetupEnv().execute(opts)
	return nil
}

func parseSetupFlags(args []string) (setupOptions, error) {
	var opts setupOptions
	var manifestPath, configPath string
	fset := flag.NewFlagSet("cewrap setup", flag.ContinueOnError)
	fset.BoolVar(&opts.auto, "auto", false, "configure every detected agent without prompting")
	fset.StringVar(&manifestPath, "manifest", "", "manifest passed to the registered server")
	fset.StringVar(&configPath, "config", "", "config file passed to the registered server")
	if err := fset.Parse(args); err != nil {
		return opts, err
	}
	if manifestPath != "" {
		opts.serveArgs = append(opts.serveArgs, "--manifest", manifestPath)
	}
	if configPath != "" {
		opts.serveArgs = append(opts.serveArgs, "--config", configPath)
	}
	return opts, nil
}

// detect scans the system for installed AI agents.
func (e *setupEnv) detect() []detectedAgent {
	var detected []detectedAgent
	for _, def := range agentRegistry {
		switch def.Kind {
		case agentCLI:
			if _, err := e.lookPath(def.Binary); err == nil {
				detected = append(detected, detectedAgent{
					Def:          def,
					AlreadySetup: configHasServer(".mcp.json", "mcpServers"),
				})
			}
		case agentFile:
			if path, ok := e.locateConfig(def); ok {
				detected = append(detected, detectedAgent{
					Def:          def,
					ConfigPath:   path,
					AlreadySetup: configHasServer(path, def.ServersKey),
				})
			}
		}
	}
	return detected
}

// locateConfig reports whether a file agent is present: one of its project
// dir markers exists or, for agents without markers, its config directory
// does.
func (e *setupEnv) locateConfig(def agentDef) (string, bool) {
	if def.ConfigPath == nil {
		return "", false
	}
	for _, marker := range def.DirMarkers {
		if _, err := e.stat(marker); err == nil {
			return def.ConfigPath(), true
		}
	}
	if len(def.DirMarkers) > 0 {
		return "", false
	}
	path := def.ConfigPath()
	if _, err := e.stat(filepath.Dir(path)); err == nil {
		return path, true
	}
	return "", false
}

// configHasServer checks whether a JSON config file already registers cewrap
// under serversKey.
func configHasServer(path, serversKey string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return false
	}
	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		return false
	}
	_, exists := servers[serverName]
	return exists
}

// serverEntry returns the MCP server config object for cewrap.
func serverEntry(serveArgs []string, extra map[string]string) map[string]any {
	args := []any{"serve"}
	for _, a := range serveArgs {
		args = append(args, a)
	}
	entry := map[string]any{
		"command": serverName,
		"args":    args,
	}
	for k, v := range extra {
		entry[k] = v
	}
	return entry
}

// mergeServerEntry adds a cewrap entry under serversKey to existing JSON (or
// a new document) and returns the merged bytes. It returns nil, nil when
// cewrap is already registered.
func mergeServerEntry(existing []byte, serversKey string, entry map[string]any) ([]byte, error) {
	config := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[serverName]; exists {
		return nil, nil
	}
	servers[serverName] = entry
	config[serversKey] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// configureFile reads, merges and writes an agent's JSON config file.
func configureFile(def agentDef, path string, serveArgs []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	var existing []byte
	if data, err := os.ReadFile(path); err == nil {
		existing = data
	}
	merged, err := mergeServerEntry(existing, def.ServersKey, serverEntry(serveArgs, def.ExtraFields))
	if err != nil {
		return err
	}
	if merged == nil {
		return nil
	}
	return os.WriteFile(path, merged, 0644)
}

// cliAddArgs builds `mcp add [--scope s] cewrap -- cewrap serve ...`.
func cliAddArgs(scope string, serveArgs []string) []string {
	args := []string{"mcp", "add"}
	if scope != "" {
		args = append(args, "--scope", scope)
	}
	args = append(args, serverName, "--", serverName, "serve")
	return append(args, serveArgs...)
}

// --- Interactive prompts ---

// promptYesNo prints a question and reads Y/n. Empty input and EOF are yes.
func promptYesNo(scanner *bufio.Scanner, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s ", question)
	if !scanner.Scan() {
		return true
	}
	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}

// promptScope reads 1/2/3 and returns "project", "user" or "" (skip).
func promptScope(scanner *bufio.Scanner, w io.Writer, agentName string) string {
	fmt.Fprintf(w, "\n%s: add the cewrap MCP server?\n", agentName)
	fmt.Fprintln(w, "  [1] Project scope (shared with team)")
	fmt.Fprintln(w, "  [2] User scope (personal, global)")
	fmt.Fprintln(w, "  [3] Skip")
	fmt.Fprintf(w, "  > ")

	if !scanner.Scan() {
		return "project"
	}
	switch strings.TrimSpace(scanner.Text()) {
	case "1", "":
		return "project"
	case "2":
		return "user"
	default:
		return ""
	}
}

// --- Orchestration ---

func (e *setupEnv) execute(opts setupOptions) {
	detected := e.detect()
	if len(detected) == 0 {
		fmt.Fprintln(e.out, "No supported AI agents detected.")
		return
	}

	fmt.Fprintln(e.out, "Detected AI agents:")
	for _, d := range detected {
		if d.AlreadySetup {
			fmt.Fprintf(e.out, "  * %s (already configured)\n", d.Def.DisplayName)
		} else {
			fmt.Fprintf(e.out, "  * %s\n", d.Def.DisplayName)
		}
	}
	fmt.Fprintln(e.out)

	if !opts.auto && !promptYesNo(e.in, e.out, "Configure agents? [Y/n]") {
		return
	}

	for _, d := range detected {
		if d.AlreadySetup {
			fmt.Fprintf(e.out, "\n%s: already configured, skipping\n", d.Def.DisplayName)
			continue
		}
		e.configure(d, opts)
	}
}

func (e *setupEnv) configure(d detectedAgent, opts setupOptions) {
	name := d.Def.DisplayName
	switch d.Def.Kind {
	case agentCLI:
		scope := "project"
		if !opts.auto && d.Def.NeedsScope {
			if scope = promptScope(e.in, e.out, name); scope == "" {
				fmt.Fprintln(e.out, "  skipped")
				return
			}
		}
		if err := e.run(d.Def.Binary, cliAddArgs(scope, opts.serveArgs)...); err != nil {
			fmt.Fprintf(e.out, "  ! %s: failed: %v\n", name, err)
			return
		}
		fmt.Fprintf(e.out, "  + %s configured (scope: %s)\n", name, scope)

	case agentFile:
		if !opts.auto && !promptYesNo(e.in, e.out, fmt.Sprintf("\n%s: add to %s? [Y/n]", name, d.ConfigPath)) {
			fmt.Fprintln(e.out, "  skipped")
			return
		}
		if err := configureFile(d.Def, d.ConfigPath, opts.serveArgs); err != nil {
			fmt.Fprintf(e.out, "  ! %s: failed: %v\n", name, err)
			return
		}
		fmt.Fprintf(e.out, "  + %s configured (%s)\n", name, d.ConfigPath)
	}
}
