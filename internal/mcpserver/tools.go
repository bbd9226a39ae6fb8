// Package mcpserver exposes the tracker store as an MCP tool server.
//
// Communicates via stdio JSON-RPC (Model Context Protocol). Every tool is a
// thin adapter over a Store operation; all domain rules live in the tracker
// package.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// addObjectiveTool returns a tool definition for creating an objective.
func addObjectiveTool() mcp.Tool {
	return mcp.NewTool("add_objective",
		mcp.WithDescription("Create a new objective (a long-lived goal). Returns the created objective as JSON."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Display text of the objective")),
		mcp.WithString("details",
			mcp.Description("Free-text details")),
		mcp.WithString("date",
			mcp.Description("Target date, RFC 3339 or YYYY-MM-DD (defaults to now)")),
		mcp.WithString("priority",
			mcp.Description("Priority: high, medium (default) or low")),
		mcp.WithArray("tags",
			mcp.Description("Tag strings")),
		mcp.WithString("reminder",
			mcp.Description("Optional reminder time of day, HH:MM")),
		mcp.WithString("alarm",
			mcp.Description("Optional alarm time of day, HH:MM")),
	)
}

// addTaskTool returns a tool definition for creating a task.
func addTaskTool() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Create a new task (a dated, completable action), optionally contributing to an objective. Returns the created task as JSON."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Display text of the task")),
		mcp.WithString("details",
			mcp.Description("Free-text details")),
		mcp.WithString("date",
			mcp.Description("Target date, RFC 3339 or YYYY-MM-DD (defaults to now)")),
		mcp.WithString("priority",
			mcp.Description("Priority: high, medium (default) or low")),
		mcp.WithArray("tags",
			mcp.Description("Tag strings")),
		mcp.WithString("objective_id",
			mcp.Description("Id of the parent objective this task contributes to")),
		mcp.WithNumber("percentage",
			mcp.Description("Contribution toward the parent objective, 0-100")),
		mcp.WithString("recurrence",
			mcp.Description("Recurrence kind: none (default), daily, weekly or monthly")),
		mcp.WithArray("recurring_days",
			mcp.Description("Weekday numbers (Sunday=0) a recurring template fires on")),
		mcp.WithString("reminder",
			mcp.Description("Optional reminder time of day, HH:MM")),
		mcp.WithString("alarm",
			mcp.Description("Optional alarm time of day, HH:MM")),
	)
}

// updateItemTool returns a tool definition for merging fields into an item.
func updateItemTool() mcp.Tool {
	return mcp.NewTool("update_item",
		mcp.WithDescription("Merge fields into an active objective or task by id. Unknown ids are a no-op. Changing a task's objective_id moves the link between objectives."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: objective or task")),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the item to update")),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Fields to merge: text, details, date, priority, tags, ideas, sub_items ([{text, percentage}]), reminder, alarm; tasks also accept objective_id, percentage, recurrence, recurring_days")),
	)
}

// updateCompletedItemTool returns a tool definition for merging fields into
// a completed item.
func updateCompletedItemTool() mcp.Tool {
	return mcp.NewTool("update_completed_item",
		mcp.WithDescription("Merge fields into a completed objective or task by id, without restoring it to the active collection. Unknown ids are a no-op."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: objective or task")),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the completed item to update")),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Fields to merge: text, details, date, priority, tags, ideas, sub_items ([{text, percentage}]), reminder, alarm; tasks also accept objective_id, percentage, recurrence, recurring_days")),
	)
}

// completeItemTool returns a tool definition for completing an item.
func completeItemTool() mcp.Tool {
	return mcp.NewTool("complete_item",
		mcp.WithDescription("Move an active objective or task to its completed collection, stamping the completion date."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: objective or task")),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the item to complete")),
	)
}

// undoCompleteItemTool returns a tool definition for undoing a completion.
func undoCompleteItemTool() mcp.Tool {
	return mcp.NewTool("undo_complete_item",
		mcp.WithDescription("Move a completed objective or task back to its active collection, restoring the objective-task link where possible."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: objective or task")),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the completed item to restore")),
	)
}

// deleteItemTool returns a tool definition for deleting an active item.
func deleteItemTool() mcp.Tool {
	return mcp.NewTool("delete_item",
		mcp.WithDescription("Delete an active objective or task. Deleting an objective cascades over every task that references it, active or completed."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: objective or task")),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the item to delete")),
	)
}

// deleteCompletedItemTool returns a tool definition for deleting a completed item.
func deleteCompletedItemTool() mcp.Tool {
	return mcp.NewTool("delete_completed_item",
		mcp.WithDescription("Delete a completed objective or task. Deleting a completed objective also removes its completed tasks."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Item kind: objective or task")),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the completed item to delete")),
	)
}

// addNoteTool returns a tool definition for creating a note.
func addNoteTool() mcp.Tool {
	return mcp.NewTool("add_note",
		mcp.WithDescription("Create a note, optionally linked to an active objective or task. Returns the created note as JSON."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title")),
		mcp.WithString("content",
			mcp.Description("Note content")),
		mcp.WithString("linked_item_id",
			mcp.Description("Id of the objective or task this note annotates")),
		mcp.WithString("linked_item_kind",
			mcp.Description("Kind of the linked item: objective or task")),
	)
}

// deleteNoteTool returns a tool definition for deleting a note.
func deleteNoteTool() mcp.Tool {
	return mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note and strip its id from every item's note list. The annotated items themselves are untouched."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the note to delete")),
	)
}

// listPendingTool returns a tool definition for the period view.
func listPendingTool() mcp.Tool {
	return mcp.NewTool("list_pending",
		mcp.WithDescription("List active and completed objectives and tasks for a period. Active lists are sorted by priority then creation time."),
		mcp.WithString("period",
			mcp.Description("Period kind: daily (default), weekly, monthly, yearly or all")),
		mcp.WithString("date",
			mcp.Description("Reference date inside the period, RFC 3339 or YYYY-MM-DD (defaults to now)")),
	)
}

// summaryTool returns a tool definition for the period summary.
func summaryTool() mcp.Tool {
	return mcp.NewTool("summary",
		mcp.WithDescription("Summarize a period: items completed in it plus active items still below 100% progress."),
		mcp.WithString("period",
			mcp.Description("Period kind: daily (default), weekly, monthly, yearly or all")),
		mcp.WithString("date",
			mcp.Description("Reference date inside the period, RFC 3339 or YYYY-MM-DD (defaults to now)")),
	)
}

// statsTool returns a tool definition for completion statistics.
func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Completion statistics: counts per tag, counts per month, and achievement milestones."),
	)
}

// historyTool returns a tool definition for reading the audit log.
func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("Read the append-only history of mutations, oldest first."),
	)
}

// listUpdatesTool returns a tool definition for listing update announcements.
func listUpdatesTool() mcp.Tool {
	return mcp.NewTool("list_updates",
		mcp.WithDescription("List the update announcements fetched from the remote feed."),
	)
}

// markUpdateSeenTool returns a tool definition for acknowledging an update.
func markUpdateSeenTool() mcp.Tool {
	return mcp.NewTool("mark_update_seen",
		mcp.WithDescription("Mark an update announcement as seen. Seen updates never reappear as unseen after a feed refetch."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the update to mark seen")),
	)
}

// timeRemainingTool returns a tool definition for the countdown formatter.
func timeRemainingTool() mcp.Tool {
	return mcp.NewTool("time_remaining",
		mcp.WithDescription("Render the coarse time remaining until a target date, e.g. \"2 days 3 hours\"."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Target date, RFC 3339 or YYYY-MM-DD")),
	)
}

// setPreferencesTool returns a tool definition for the persisted UI flags.
func setPreferencesTool() mcp.Tool {
	return mcp.NewTool("set_preferences",
		mcp.WithDescription("Persist the dark-mode and welcome-overlay flags."),
		mcp.WithBoolean("dark_mode",
			mcp.Description("Enable or disable dark mode")),
		mcp.WithBoolean("show_welcome",
			mcp.Description("Show or hide the welcome overlay on next launch")),
	)
}
