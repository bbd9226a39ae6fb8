package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/planify/planify/internal/tracker"
)

// jsonResult marshals v as indented JSON in a text result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// parseKind interprets the kind parameter shared by the item tools.
func parseKind(s string) (tracker.ItemKind, bool) {
	switch s {
	case "objective":
		return tracker.KindObjective, true
	case "task":
		return tracker.KindTask, true
	}
	return "", false
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates, the
// latter interpreted at local midnight.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", s)
}

// parsePriority maps the priority parameter, defaulting to medium.
func parsePriority(s string) (tracker.Priority, bool) {
	switch s {
	case "", "medium":
		return tracker.PriorityMedium, true
	case "high":
		return tracker.PriorityHigh, true
	case "low":
		return tracker.PriorityLow, true
	}
	return "", false
}

func parseRecurrence(s string) (tracker.Recurrence, bool) {
	switch s {
	case "", "none":
		return tracker.RecurrenceNone, true
	case "daily":
		return tracker.RecurrenceDaily, true
	case "weekly":
		return tracker.RecurrenceWeekly, true
	case "monthly":
		return tracker.RecurrenceMonthly, true
	}
	return "", false
}

// stringsFrom converts a JSON array argument to a string slice, skipping
// non-string elements.
func stringsFrom(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// weekdaysFrom converts a JSON array of day numbers (Sunday=0) to weekdays,
// skipping anything out of range.
func weekdaysFrom(raw []any) []time.Weekday {
	out := make([]time.Weekday, 0, len(raw))
	for _, v := range raw {
		n, ok := v.(float64)
		if !ok || n < 0 || n > 6 || n != float64(int(n)) {
			continue
		}
		out = append(out, time.Weekday(int(n)))
	}
	return out
}

// HandleAddObjective creates an objective from the request parameters.
func (h *handlers) HandleAddObjective(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("Missing required parameter: text"), nil
	}

	priority, ok := parsePriority(request.GetString("priority", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid priority: expected high, medium or low"), nil
	}

	date := time.Now()
	if raw := request.GetString("date", ""); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date = parsed
	}

	var tags []string
	if raw, ok := request.GetArguments()["tags"].([]any); ok {
		tags = stringsFrom(raw)
	}

	obj := h.store.AddObjective(tracker.ObjectiveFields{
		Text:     text,
		Details:  request.GetString("details", ""),
		Date:     date,
		Priority: priority,
		Tags:     tags,
		Reminder: request.GetString("reminder", ""),
		Alarm:    request.GetString("alarm", ""),
	})
	return jsonResult(obj), nil
}

// HandleAddTask creates a task from the request parameters. A dangling
// objective_id is stored as-is, matching the store's creation contract.
func (h *handlers) HandleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("Missing required parameter: text"), nil
	}

	priority, ok := parsePriority(request.GetString("priority", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid priority: expected high, medium or low"), nil
	}

	recurrence, ok := parseRecurrence(request.GetString("recurrence", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid recurrence: expected none, daily, weekly or monthly"), nil
	}

	date := time.Now()
	if raw := request.GetString("date", ""); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date = parsed
	}

	args := request.GetArguments()

	var tags []string
	if raw, ok := args["tags"].([]any); ok {
		tags = stringsFrom(raw)
	}
	var days []time.Weekday
	if raw, ok := args["recurring_days"].([]any); ok {
		days = weekdaysFrom(raw)
	}
	percentage := 0.0
	if raw, ok := args["percentage"].(float64); ok {
		percentage = raw
	}

	task := h.store.AddTask(tracker.TaskFields{
		Text:          text,
		Details:       request.GetString("details", ""),
		Date:          date,
		Priority:      priority,
		Tags:          tags,
		ObjectiveID:   request.GetString("objective_id", ""),
		Percentage:    percentage,
		Reminder:      request.GetString("reminder", ""),
		Alarm:         request.GetString("alarm", ""),
		Recurrence:    recurrence,
		RecurringDays: days,
	})
	return jsonResult(task), nil
}

// HandleUpdateItem merges a fields object into an active item. A missing id
// is reported as a no-op rather than an error, per the store contract.
func (h *handlers) HandleUpdateItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, ok := parseKind(request.GetString("kind", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid kind: expected objective or task"), nil
	}
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	fields, ok := request.GetArguments()["fields"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Missing required parameter: fields"), nil
	}

	var (
		found bool
		err   error
	)
	switch kind {
	case tracker.KindObjective:
		var u tracker.ObjectiveUpdate
		u, err = objectiveUpdateFrom(fields)
		if err == nil {
			found = h.store.UpdateObjective(id, u)
		}
	case tracker.KindTask:
		var u tracker.TaskUpdate
		u, err = taskUpdateFrom(fields)
		if err == nil {
			found = h.store.UpdateTask(id, u)
		}
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultText(fmt.Sprintf("No %s with id %s; nothing updated.", kind, id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated %s %s.", kind, id)), nil
}

// HandleUpdateCompletedItem merges a fields object into a completed item,
// leaving it in the completed collection.
func (h *handlers) HandleUpdateCompletedItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, ok := parseKind(request.GetString("kind", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid kind: expected objective or task"), nil
	}
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	fields, ok := request.GetArguments()["fields"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Missing required parameter: fields"), nil
	}

	var (
		found bool
		err   error
	)
	switch kind {
	case tracker.KindObjective:
		var u tracker.ObjectiveUpdate
		u, err = objectiveUpdateFrom(fields)
		if err == nil {
			found = h.store.UpdateCompletedObjective(id, u)
		}
	case tracker.KindTask:
		var u tracker.TaskUpdate
		u, err = taskUpdateFrom(fields)
		if err == nil {
			found = h.store.UpdateCompletedTask(id, u)
		}
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultText(fmt.Sprintf("No completed %s with id %s; nothing updated.", kind, id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated completed %s %s.", kind, id)), nil
}

// objectiveUpdateFrom converts a loose fields object into a typed update.
func objectiveUpdateFrom(fields map[string]any) (tracker.ObjectiveUpdate, error) {
	var u tracker.ObjectiveUpdate

	if v, ok := fields["text"].(string); ok {
		u.Text = &v
	}
	if v, ok := fields["details"].(string); ok {
		u.Details = &v
	}
	if v, ok := fields["date"].(string); ok {
		t, err := parseDate(v)
		if err != nil {
			return u, err
		}
		u.Date = &t
	}
	if v, ok := fields["priority"].(string); ok {
		p, ok := parsePriority(v)
		if !ok {
			return u, fmt.Errorf("invalid priority %q", v)
		}
		u.Priority = &p
	}
	if v, ok := fields["tags"].([]any); ok {
		tags := stringsFrom(v)
		u.Tags = &tags
	}
	if v, ok := fields["ideas"].([]any); ok {
		ideas := stringsFrom(v)
		u.Ideas = &ideas
	}
	if v, ok := fields["sub_items"].([]any); ok {
		items := subItemsFrom(v)
		u.SubItems = &items
	}
	if v, ok := fields["reminder"].(string); ok {
		u.Reminder = &v
	}
	if v, ok := fields["alarm"].(string); ok {
		u.Alarm = &v
	}

	return u, nil
}

// taskUpdateFrom converts a loose fields object into a typed update.
func taskUpdateFrom(fields map[string]any) (tracker.TaskUpdate, error) {
	var u tracker.TaskUpdate

	if v, ok := fields["text"].(string); ok {
		u.Text = &v
	}
	if v, ok := fields["details"].(string); ok {
		u.Details = &v
	}
	if v, ok := fields["date"].(string); ok {
		t, err := parseDate(v)
		if err != nil {
			return u, err
		}
		u.Date = &t
	}
	if v, ok := fields["priority"].(string); ok {
		p, ok := parsePriority(v)
		if !ok {
			return u, fmt.Errorf("invalid priority %q", v)
		}
		u.Priority = &p
	}
	if v, ok := fields["tags"].([]any); ok {
		tags := stringsFrom(v)
		u.Tags = &tags
	}
	if v, ok := fields["objective_id"].(string); ok {
		u.ObjectiveID = &v
	}
	if v, ok := fields["percentage"].(float64); ok {
		u.Percentage = &v
	}
	if v, ok := fields["recurrence"].(string); ok {
		r, ok := parseRecurrence(v)
		if !ok {
			return u, fmt.Errorf("invalid recurrence %q", v)
		}
		u.Recurrence = &r
	}
	if v, ok := fields["recurring_days"].([]any); ok {
		days := weekdaysFrom(v)
		u.RecurringDays = &days
	}
	if v, ok := fields["reminder"].(string); ok {
		u.Reminder = &v
	}
	if v, ok := fields["alarm"].(string); ok {
		u.Alarm = &v
	}

	return u, nil
}

func subItemsFrom(raw []any) []tracker.SubItem {
	items := make([]tracker.SubItem, 0, len(raw))
	for _, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		item := tracker.SubItem{}
		if s, ok := m["text"].(string); ok {
			item.Text = s
		}
		if p, ok := m["percentage"].(float64); ok {
			item.Percentage = p
		}
		items = append(items, item)
	}
	return items
}

// HandleCompleteItem moves an active item to its completed collection.
func (h *handlers) HandleCompleteItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, ok := parseKind(request.GetString("kind", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid kind: expected objective or task"), nil
	}
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	if !h.store.CompleteItem(kind, id) {
		return mcp.NewToolResultText(fmt.Sprintf("No active %s with id %s; nothing completed.", kind, id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Completed %s %s.", kind, id)), nil
}

// HandleUndoCompleteItem moves a completed item back to its active collection.
func (h *handlers) HandleUndoCompleteItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, ok := parseKind(request.GetString("kind", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid kind: expected objective or task"), nil
	}
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	if !h.store.UndoCompleteItem(kind, id) {
		return mcp.NewToolResultText(fmt.Sprintf("No completed %s with id %s; nothing restored.", kind, id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Restored %s %s to the active collection.", kind, id)), nil
}

// HandleDeleteItem deletes an active item, cascading over linked tasks when
// the item is an objective.
func (h *handlers) HandleDeleteItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, ok := parseKind(request.GetString("kind", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid kind: expected objective or task"), nil
	}
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	if !h.store.DeleteItem(kind, id) {
		return mcp.NewToolResultText(fmt.Sprintf("No active %s with id %s; nothing deleted.", kind, id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %s %s.", kind, id)), nil
}

// HandleDeleteCompletedItem deletes a completed item.
func (h *handlers) HandleDeleteCompletedItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, ok := parseKind(request.GetString("kind", ""))
	if !ok {
		return mcp.NewToolResultError("Invalid kind: expected objective or task"), nil
	}
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	if !h.store.DeleteCompletedItem(kind, id) {
		return mcp.NewToolResultText(fmt.Sprintf("No completed %s with id %s; nothing deleted.", kind, id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted completed %s %s.", kind, id)), nil
}
