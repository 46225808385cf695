// Package mcpserver exposes the brokerage operations as MCP tools over
// stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"alpacamcp/internal/analytics"
	"alpacamcp/internal/broker"
	"alpacamcp/internal/monitoring"
	"alpacamcp/internal/risk"
)

const serverName = "alpaca-mcp-service"

// Server hosts the six brokerage tools on an MCP server.
type Server struct {
	broker   broker.Broker
	risk     *risk.Manager
	notifier analytics.Notifier
	log      *slog.Logger
	mcp      *server.MCPServer
}

// New wires the tool surface. The notifier may be a NopNotifier; the risk
// manager and broker are required.
func New(b broker.Broker, rm *risk.Manager, n analytics.Notifier, log *slog.Logger) *Server {
	s := &Server{
		broker:   b,
		risk:     rm,
		notifier: n,
		log:      log,
	}

	m := server.NewMCPServer(serverName, "1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools(m)
	s.mcp = m

	return s
}

// ServeStdio runs the server over stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	s.log.Info("starting MCP server (stdio mode)")
	return server.ServeStdio(s.mcp)
}

// ServeHTTP runs the streamable HTTP transport on the given port, with the
// MCP endpoint at /mcp and Prometheus metrics at /metrics.
func (s *Server) ServeHTTP(port int) error {
	streamable := server.NewStreamableHTTPServer(s.mcp)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	mux.Handle("/mcp/", streamable)
	mux.Handle("/metrics", monitoring.Handler())

	addr := fmt.Sprintf(":%d", port)
	s.log.Info("starting MCP server (HTTP mode)", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

// toolHandler is the core shape of every tool: plain text out, error in the
// normal return path.
type toolHandler func(ctx context.Context, req mcp.CallToolRequest) (string, error)

// wrap adapts a toolHandler to the transport. Every error becomes a
// well-formed text response: risk rejections render as "ERROR: ..." and any
// other failure carries the tool's own prefix. The hosting agent never sees
// a protocol-level fault.
func (s *Server) wrap(tool, errPrefix string, h toolHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		monitoring.RecordToolCall(tool)

		text, err := h(ctx, req)
		if err == nil {
			return mcp.NewToolResultText(text), nil
		}

		monitoring.RecordToolError(tool)
		var rej *risk.Rejection
		if errors.As(err, &rej) {
			monitoring.RecordOrderRejection(string(rej.Reason))
			s.log.Info("order rejected", "tool", tool, "reason", rej.Reason)
			return mcp.NewToolResultText("ERROR: " + rej.Error()), nil
		}

		s.log.Error("tool failed", "tool", tool, "error", err)
		return mcp.NewToolResultText(errPrefix + ": " + err.Error()), nil
	}
}
