package network

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/cost"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/engine"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/parser"
)

// Request carries one query text and the sharding assignment to price it
// under, as collection-name → shard-key pairs.
type Request struct {
	Query    string            `json:"query"`
	Sharding map[string]string `json:"sharding"`
}

// Response is either a priced breakdown or an error message
type Response struct {
	Breakdown *cost.Breakdown `json:"breakdown,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Start runs the TCP estimation server
func Start(port int, est *engine.Engine) {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("Failed to bind to port", "port", port, "error", err)
		return
	}
	defer listener.Close()

	slog.Info("Running on port", "port", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			slog.Error("Failed to accept connection", "error", err)
			continue
		}
		go handleConnection(conn, est)
	}
}

func handleConnection(conn net.Conn, est *engine.Engine) {
	defer conn.Close()

	// Use Decoder instead of Scanner for network streams
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return // Connection closed gracefully
			}
			slog.Error("decode error", "error", err)
			_ = encoder.Encode(Response{Error: fmt.Sprintf("Invalid request format: %v", err)})
			return
		}

		if req.Query == "exit" || req.Query == "\\q" {
			return
		}

		breakdown, err := est.Estimate(req.Query, ShardingFrom(req.Sharding))
		if err != nil {
			if err := encoder.Encode(Response{Error: err.Error()}); err != nil {
				slog.Error("encode error", "error", err)
				return
			}
			continue
		}

		if err := encoder.Encode(Response{Breakdown: breakdown}); err != nil {
			slog.Error("encode error", "error", err)
			return
		}
	}
}

// ShardingFrom resolves collection names to entities, dropping unknown ones
func ShardingFrom(raw map[string]string) cost.Sharding {
	sh := make(cost.Sharding, len(raw))
	for name, key := range raw {
		if entity := parser.Normalize(name); entity.Known() {
			sh[entity] = key
		} else {
			slog.Warn("ignoring sharding entry for unknown collection", "name", name)
		}
	}
	return sh
}
