package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/planify/planify/internal/tracker"
)

// HandleAddNote creates a note, optionally linked to an active item.
func (h *handlers) HandleAddNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := request.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("Missing required parameter: title"), nil
	}

	fields := tracker.NoteFields{
		Title:        title,
		Content:      request.GetString("content", ""),
		LinkedItemID: request.GetString("linked_item_id", ""),
	}
	if fields.LinkedItemID != "" {
		kind, ok := parseKind(request.GetString("linked_item_kind", ""))
		if !ok {
			return mcp.NewToolResultError("Invalid linked_item_kind: expected objective or task"), nil
		}
		fields.LinkedItemType = kind
	}

	note := h.store.AddNote(fields)
	return jsonResult(note), nil
}

// HandleDeleteNote deletes a note. The items the note annotated survive.
func (h *handlers) HandleDeleteNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	if !h.store.DeleteNote(id) {
		return mcp.NewToolResultText(fmt.Sprintf("No note with id %s; nothing deleted.", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted note %s.", id)), nil
}
