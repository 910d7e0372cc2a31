package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerUploadMaterialTool(srv, svc)
	registerDeleteMaterialTool(srv, svc)
	registerListMaterialsTool(srv, svc)
	registerPreviewMaterialTool(srv, svc)
	registerMaterialStatsTool(srv, svc)
	registerAddEventTool(srv, svc)
	registerEditEventTool(srv, svc)
	registerDeleteEventTool(srv, svc)
	registerEventsOnTool(srv, svc)
	registerMonthGridTool(srv, svc)
}

func registerUploadMaterialTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"upload_material",
		mcp.WithDescription("Upload a classroom material. The transfer is simulated and takes about a second."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("File name, including its extension."),
		),
		mcp.WithString("subject",
			mcp.Description("Subject the material belongs to (default Unspecified)."),
		),
		mcp.WithString("uploader",
			mcp.Description("Who is uploading (default Anonymous)."),
		),
		mcp.WithString("mediaType",
			mcp.Description("Optional media type; sniffed from the content when omitted."),
		),
		mcp.WithString("content",
			mcp.Description("File content as text, or base64 when encoding is base64."),
		),
		mcp.WithString("encoding",
			mcp.Description("Encoding of content."),
			mcp.Enum("text", "base64"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name      string `json:"name"`
			Subject   string `json:"subject"`
			Uploader  string `json:"uploader"`
			MediaType string `json:"mediaType"`
			Content   string `json:"content"`
			Encoding  string `json:"encoding"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UploadMaterial(ctx, UploadOptions{
			FileName:  args.Name,
			MediaType: args.MediaType,
			Subject:   args.Subject,
			Uploader:  args.Uploader,
			Content:   args.Content,
			Encoding:  args.Encoding,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"status":   "Uploaded " + dto.Name,
			"material": dto,
		})
	})
}

func registerDeleteMaterialTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_material",
		mcp.WithDescription("Delete a material by identifier. Unknown identifiers are ignored."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Material identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteMaterial(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerListMaterialsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_materials",
		mcp.WithDescription("List materials filtered by subject, type and search text, then sorted."),
		mcp.WithString("subject",
			mcp.Description("Exact subject to keep, or all (default)."),
		),
		mcp.WithString("type",
			mcp.Description("File type filter based on the file name."),
			mcp.Enum("all", "pdf", "docx", "zip"),
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive search across name, subject and uploader."),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order (default newest)."),
			mcp.Enum("newest", "oldest", "name"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := ListOptions{
			Subject: request.GetString("subject", ""),
			Type:    request.GetString("type", ""),
			Query:   request.GetString("query", ""),
			Sort:    request.GetString("sort", ""),
		}
		results, err := svc.ListMaterials(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"materials": results,
			"count":     len(results),
		})
	})
}

func registerPreviewMaterialTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"preview_material",
		mcp.WithDescription("Preview a material. Images and PDFs come back inline or as a URL; other types return a message."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Material identifier to preview."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.PreviewMaterial(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMaterialStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"material_stats",
		mcp.WithDescription("Count materials, projects and materials per subject."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, subjects, err := svc.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"stats":    stats,
			"subjects": subjects,
		})
	})
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_event",
		mcp.WithDescription("Add a calendar event."),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD, today, tomorrow or an offset like +3d (default today)."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title; must not be blank."),
		),
		mcp.WithString("subject",
			mcp.Description("Optional subject."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date    string `json:"date"`
			Title   string `json:"title"`
			Subject string `json:"subject"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddEvent(ctx, args.Date, args.Title, args.Subject)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerEditEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"edit_event",
		mcp.WithDescription("Change the title and subject of an event. The date is fixed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to edit."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("New title; must not be blank."),
		),
		mcp.WithString("subject",
			mcp.Description("New subject; empty clears it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EditEvent(ctx, id, title, request.GetString("subject", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if dto == nil {
			return toJSONResult(map[string]any{"id": id, "updated": false})
		}
		return toJSONResult(map[string]any{"event": dto, "updated": true})
	})
}

func registerDeleteEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete an event by identifier. Unknown identifiers are ignored."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEvent(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerEventsOnTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"events_on",
		mcp.WithDescription("List the events on one day in creation order."),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD, today, tomorrow or an offset like +3d (default today)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, events, err := svc.EventsOn(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"date":   date,
			"events": events,
			"count":  len(events),
		})
	})
}

func registerMonthGridTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"month_grid",
		mcp.WithDescription("Return the six-week grid for a month with the events on each day."),
		mcp.WithString("month",
			mcp.Description("Month as YYYY-MM, a month name, this, next or prev (default this)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		grid, err := svc.MonthGrid(ctx, request.GetString("month", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(grid)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
