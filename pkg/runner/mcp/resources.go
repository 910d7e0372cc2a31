package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerMaterialsResource(srv, svc)
	registerEventsTemplate(srv, svc)
	registerCalendarTemplate(srv, svc)
}

func registerMaterialsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"eduhub://materials",
		"Materials",
		mcp.WithResourceDescription("Every material in the catalog, newest first, with dashboard counters."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		materials, err := svc.ListMaterials(ctx, ListOptions{})
		if err != nil {
			return nil, err
		}
		stats, subjects, err := svc.Stats(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"materials": materials,
			"count":     len(materials),
			"stats":     stats,
			"subjects":  subjects,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEventsTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"eduhub://events/{date}",
		"Events On Day",
		mcp.WithTemplateDescription("Calendar events on one day (YYYY-MM-DD)."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day := templateArg(request, "date")
		if day == "" {
			return nil, fmt.Errorf("date is required")
		}

		date, events, err := svc.EventsOn(ctx, day)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"date":   date,
			"count":  len(events),
			"events": events,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerCalendarTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"eduhub://calendar/{month}",
		"Month Grid",
		mcp.WithTemplateDescription("Six-week grid for a month (YYYY-MM) with events per day."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		month := templateArg(request, "month")
		if month == "" {
			return nil, fmt.Errorf("month is required")
		}

		grid, err := svc.MonthGrid(ctx, month)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, grid)
	})
}

// Template arguments arrive as a string or a single-element slice depending
// on how the URI template matched.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
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
