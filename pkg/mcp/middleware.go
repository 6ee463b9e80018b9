package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/cewrap/pkg/mcplog"
)

// loggingMiddleware records every tool call as a JSONL entry. NewServer only
// installs it when a logger is configured.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)
			_ = s.logger.Write(newLogEntry(start, req, result, err))
			return result, err
		}
	}
}

func newLogEntry(start time.Time, req mcp.CallToolRequest, result *mcp.CallToolResult, err error) mcplog.LogEntry {
	rb := mcplog.ResponseBytes(result)
	var errStr *string
	switch {
	case err != nil:
		msg := err.Error()
		errStr = &msg
	case result != nil && result.IsError:
		msg := mcplog.ResultText(result)
		errStr = &msg
	}

	return mcplog.LogEntry{
		Ts:            start.UTC().Format(time.RFC3339),
		Tool:          req.Params.Name,
		Component:     req.GetString("class_name", ""),
		Params:        mcplog.SanitizeParams(req.GetArguments()),
		DurationMs:    time.Since(start).Milliseconds(),
		ResponseBytes: rb,
		TokensEst:     rb / 4,
		Error:         errStr,
	}
}
