package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/mcplog"
	"github.com/gnana997/cewrap/pkg/wrapper"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for cewrap, exposing manifest inspection
// and in-memory wrapper previews.
type Server struct {
	mcpServer *server.MCPServer
	pkg       *manifest.Package
	gen       *wrapper.Generator
	logger    *mcplog.Logger // nil disables tool-call logging
}

// NewServer creates a new MCP server over a loaded manifest. The generator
// only renders; the server never writes files.
func NewServer(pkg *manifest.Package, gen *wrapper.Generator, logger *mcplog.Logger) *Server {
	s := &Server{pkg: pkg, gen: gen, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("cewrap", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: getComponentAPITool(), Handler: s.handleGetComponentAPI},
		server.ServerTool{Tool: previewWrapperTool(), Handler: s.handlePreviewWrapper},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
