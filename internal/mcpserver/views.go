package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/planify/planify/internal/tracker"
)

// parsePeriod interprets the period parameter, defaulting to daily.
func parsePeriod(s string) (tracker.Period, bool) {
	switch s {
	case "", "daily":
		return tracker.PeriodDaily, true
	case "weekly":
		return tracker.PeriodWeekly, true
	case "monthly":
		return tracker.PeriodMonthly, true
	case "yearly":
		return tracker.PeriodYearly, true
	case "all":
		return tracker.PeriodAll, true
	}
	return "", false
}

// periodArgs extracts the shared period/date parameter pair.
func periodArgs(request mcp.CallToolRequest) (tracker.Period, time.Time, *mcp.CallToolResult) {
	period, ok := parsePeriod(request.GetString("period", ""))
	if !ok {
		return "", time.Time{}, mcp.NewToolResultError("Invalid period: expected daily, weekly, monthly, yearly or all")
	}

	ref := time.Now()
	if raw := request.GetString("date", ""); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return "", time.Time{}, mcp.NewToolResultError(err.Error())
		}
		ref = parsed
	}
	return period, ref, nil
}

// HandleListPending returns the four-way active/completed split for a period.
func (h *handlers) HandleListPending(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, ref, errResult := periodArgs(request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(h.store.View(period, ref)), nil
}

// HandleSummary returns the completed/pending summary for a period.
func (h *handlers) HandleSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, ref, errResult := periodArgs(request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(h.store.Summarize(period, ref)), nil
}

// HandleStats returns tag, monthly, and achievement statistics.
func (h *handlers) HandleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"tags":         h.store.TagStats(),
		"monthly":      h.store.MonthlyStats(),
		"achievements": h.store.Achievements(),
	}), nil
}

// HandleHistory returns the append-only audit log.
func (h *handlers) HandleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.store.History()), nil
}

// HandleTimeRemaining renders the countdown to a target date.
func (h *handlers) HandleTimeRemaining(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("date", "")
	if raw == "" {
		return mcp.NewToolResultError("Missing required parameter: date"), nil
	}
	target, err := parseDate(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(tracker.TimeRemaining(time.Now(), target)), nil
}

// HandleListUpdates returns the locally remembered update announcements.
func (h *handlers) HandleListUpdates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.store.Updates()), nil
}

// HandleMarkUpdateSeen acknowledges one update.
func (h *handlers) HandleMarkUpdateSeen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}
	if !h.store.MarkUpdateSeen(id) {
		return mcp.NewToolResultText(fmt.Sprintf("No update with id %s.", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Marked update %s as seen.", id)), nil
}

// HandleSetPreferences persists the dark-mode and welcome flags.
func (h *handlers) HandleSetPreferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	changed := 0
	if v, ok := args["dark_mode"].(bool); ok {
		h.store.SetDarkMode(v)
		changed++
	}
	if v, ok := args["show_welcome"].(bool); ok {
		h.store.SetShowWelcome(v)
		changed++
	}
	if changed == 0 {
		return mcp.NewToolResultError("Nothing to set: provide dark_mode and/or show_welcome"), nil
	}
	return mcp.NewToolResultText("Preferences saved."), nil
}
