package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/planify/planify/internal/tracker"
)

// NewServer creates and configures an MCP server exposing all tracker tools
// over the given store.
func NewServer(store *tracker.Store) *server.MCPServer {
	h := &handlers{store: store}

	s := server.NewMCPServer(
		"planify",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Item mutations
	s.AddTool(addObjectiveTool(), h.HandleAddObjective)
	s.AddTool(addTaskTool(), h.HandleAddTask)
	s.AddTool(updateItemTool(), h.HandleUpdateItem)
	s.AddTool(updateCompletedItemTool(), h.HandleUpdateCompletedItem)
	s.AddTool(completeItemTool(), h.HandleCompleteItem)
	s.AddTool(undoCompleteItemTool(), h.HandleUndoCompleteItem)
	s.AddTool(deleteItemTool(), h.HandleDeleteItem)
	s.AddTool(deleteCompletedItemTool(), h.HandleDeleteCompletedItem)

	// Notes
	s.AddTool(addNoteTool(), h.HandleAddNote)
	s.AddTool(deleteNoteTool(), h.HandleDeleteNote)

	// Views and reporting
	s.AddTool(listPendingTool(), h.HandleListPending)
	s.AddTool(summaryTool(), h.HandleSummary)
	s.AddTool(statsTool(), h.HandleStats)
	s.AddTool(historyTool(), h.HandleHistory)
	s.AddTool(timeRemainingTool(), h.HandleTimeRemaining)

	// Updates and preferences
	s.AddTool(listUpdatesTool(), h.HandleListUpdates)
	s.AddTool(markUpdateSeenTool(), h.HandleMarkUpdateSeen)
	s.AddTool(setPreferencesTool(), h.HandleSetPreferences)

	return s
}

// handlers adapts tool requests onto the shared store.
type handlers struct {
	store *tracker.Store
}
