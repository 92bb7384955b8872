package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/jrnl/pkg/app"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddEntryTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerTagCountsTool(srv, svc)
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Add an entry to the journal. The first line or sentence becomes the title."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Entry text; words starting with a tag symbol such as @ are tags."),
		),
		mcp.WithString("date",
			mcp.Description("Optional date expression such as 'yesterday at 5pm' or '2024-03-01'. Defaults to now."),
		),
		mcp.WithBoolean("starred",
			mcp.Description("Mark the entry as starred."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text    string `json:"text"`
			Date    string `json:"date"`
			Starred bool   `json:"starred"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		e, err := svc.AddEntry(ctx, AddEntryOptions{Text: args.Text, Date: args.Date, Starred: args.Starred})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(e)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries, optionally filtered by date range and tags."),
		mcp.WithString("from",
			mcp.Description("Only entries on or after this date expression."),
		),
		mcp.WithString("to",
			mcp.Description("Only entries on or before this date expression."),
		),
		mcp.WithString("last",
			mcp.Description("Only entries within this window, such as 3d or 2w."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma or space separated tags, including their symbol (@work)."),
		),
		mcp.WithBoolean("and",
			mcp.Description("Require every tag instead of any."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Return only the last n matching entries."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q := queryFromRequest(request)
		entries, err := svc.ListEntries(ctx, q)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries by substring match across titles and bodies, newest first."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchEntries(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerTagCountsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"tag_counts",
		mcp.WithDescription("Count how many entries use each tag."),
		mcp.WithString("from",
			mcp.Description("Only count entries on or after this date expression."),
		),
		mcp.WithString("to",
			mcp.Description("Only count entries on or before this date expression."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.TagCounts(ctx, queryFromRequest(request))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(summary)
	})
}

func queryFromRequest(request mcp.CallToolRequest) app.Query {
	return app.Query{
		From:   request.GetString("from", ""),
		To:     request.GetString("to", ""),
		Last:   request.GetString("last", ""),
		Tags:   splitTags(request.GetString("tags", "")),
		Strict: request.GetBool("and", false),
		Limit:  request.GetInt("limit", 0),
	}
}

func splitTags(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
