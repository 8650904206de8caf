package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tododapp/internal/application"
	"tododapp/internal/application/commands"
)

// RegisterWriteTools adds the mutating task tools to the MCP server.
// Each call blocks until the transaction is confirmed, rejected or failed.
func RegisterWriteTools(s *server.MCPServer, sync commands.TaskSync, sessions commands.Connector) {
	s.AddTool(createTool(), createHandler(sync))
	s.AddTool(completeTool(), completeHandler(sync))
	s.AddTool(deleteTool(), deleteHandler(sync))
	s.AddTool(dismissTool(), dismissHandler(sync, sessions))
	s.AddTool(connectTool(), connectHandler(sessions))
}

// --- create_task ---

func createTool() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Pin the task text to IPFS and record its CID on the ledger. The wallet asks the user to approve the transaction."),
		mcp.WithString("content",
			mcp.Description("Task text"),
			mcp.Required(),
		),
	)
}

func createHandler(sync commands.TaskSync) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateTaskCommand(sync, req.GetString("content", ""))
		return mutationResult(cmd.Execute(ctx))
	}
}

// --- complete_task ---

func completeTool() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task complete on the ledger."),
		mcp.WithString("index",
			mcp.Description("Task index as shown by list_tasks"),
			mcp.Required(),
		),
	)
}

func completeHandler(sync commands.TaskSync) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCompleteTaskCommand(sync, req.GetString("index", ""))
		return mutationResult(cmd.Execute(ctx))
	}
}

// --- delete_task ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task from the ledger. Its pinned content stays on IPFS."),
		mcp.WithString("index",
			mcp.Description("Task index as shown by list_tasks"),
			mcp.Required(),
		),
	)
}

func deleteHandler(sync commands.TaskSync) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteTaskCommand(sync, req.GetString("index", ""))
		return mutationResult(cmd.Execute(ctx))
	}
}

// --- dismiss_error ---

func dismissTool() mcp.Tool {
	return mcp.NewTool("dismiss_error",
		mcp.WithDescription("Clear the last operation error and any network error."),
	)
}

func dismissHandler(sync commands.TaskSync, sessions commands.Connector) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := commands.NewDismissErrorCommand(sessions, sync).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Dismissed."), nil
	}
}

// --- connect_wallet ---

func connectTool() mcp.Tool {
	return mcp.NewTool("connect_wallet",
		mcp.WithDescription("Ask the wallet for account access and start a session. Needed before any task tool when the wallet was not connected at startup."),
	)
}

func connectHandler(sessions commands.Connector) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewConnectCommand(sessions).Execute(ctx)
		if errors.Is(err, application.ErrUserRejected) {
			return mcp.NewToolResultText("Connection rejected in wallet."), nil
		}
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func mutationResult(result *commands.MutationResult, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}
