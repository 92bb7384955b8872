package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/jrnl/pkg/app"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerJournalResource(srv, svc)
	registerTagsResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerJournalResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"jrnl://journal",
		"Journal",
		mcp.WithResourceDescription("The journal name, entry count and date span."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summary, err := svc.Summary(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, summary)
	})
}

func registerTagsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"jrnl://tags",
		"Tags",
		mcp.WithResourceDescription("Tag usage counts across the whole journal."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summary, err := svc.TagCounts(ctx, app.Query{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, summary)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"jrnl://days/{date}",
		"Entries on a day",
		mcp.WithTemplateDescription("Entries written on one day, given as YYYY-MM-DD."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day := argument(request.Params.Arguments["date"])
		if day == "" {
			return nil, fmt.Errorf("date is required")
		}

		entries, err := svc.ListEntries(ctx, app.Query{From: day, To: day})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"date":    day,
			"count":   len(entries),
			"entries": entries,
		})
	})
}

// argument unwraps a URI template variable, which may arrive as a string or
// a single element list.
func argument(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
