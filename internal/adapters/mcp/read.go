package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tododapp/internal/application/commands"
	"tododapp/internal/application/controller"
)

// RegisterReadTools adds the read-only task tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, sync commands.TaskSync, sessions commands.Connector) {
	s.AddTool(listTool(), listHandler(sync))
	s.AddTool(statusTool(), statusHandler(sync, sessions))
}

// --- list_tasks ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List the tasks of the connected account with their index, completion state, IPFS CID and text."),
		mcp.WithBoolean("refresh",
			mcp.Description("Re-read the ledger before listing instead of returning the last synchronized list"),
		),
		mcp.WithBoolean("pending",
			mcp.Description("Only list tasks that are not completed"),
		),
	)
}

func listHandler(sync commands.TaskSync) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListTasksCommand(sync, req.GetBool("refresh", false))
		cmd.Pending = req.GetBool("pending", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Tasks) == 0 {
			return mcp.NewToolResultText("No tasks."), nil
		}

		var sb strings.Builder
		for _, tv := range result.Tasks {
			sb.WriteString(formatTask(tv))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- session_status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("session_status",
		mcp.WithDescription("Show the wallet session, the transaction in flight and the last error."),
	)
}

func statusHandler(sync commands.TaskSync, sessions commands.Connector) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStatusCommand(sessions, sync).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		st := result.Session
		if !st.Connected {
			sb.WriteString("session: not connected\n")
		} else {
			fmt.Fprintf(&sb, "session: %s on %s (chain %d)\n", st.Session.Account, st.Session.Network, st.Session.ChainID)
		}
		if st.NetworkError != nil {
			fmt.Fprintf(&sb, "network error: %v\n", st.NetworkError)
		}

		snap := result.Snapshot
		fmt.Fprintf(&sb, "state: %s\n", snap.State)
		if snap.Pending != nil {
			fmt.Fprintf(&sb, "pending: %s", snap.Pending.Describe())
			if snap.Pending.TxHandle != "" {
				fmt.Fprintf(&sb, " (tx %s)", snap.Pending.TxHandle)
			}
			sb.WriteByte('\n')
		}
		if snap.LastError != nil {
			fmt.Fprintf(&sb, "last error: %v\n", snap.LastError)
		}
		if !snap.RefreshedAt.IsZero() {
			fmt.Fprintf(&sb, "refreshed: %s\n", snap.RefreshedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(&sb, "tasks: %d\n", len(snap.Tasks))

		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatTask(tv controller.TaskView) string {
	check := "[ ]"
	if tv.IsCompleted {
		check = "[x]"
	}
	return fmt.Sprintf("%d  %s  %s  %s", tv.Index, check, tv.ContentAddress, tv.Text)
}
