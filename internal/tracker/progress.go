package tracker

// ComputeObjectiveProgress computes an objective's completion percentage in
// [0,100] from its current sources. It is pure: the objective's stored
// Progress field is only ever a fallback, never an input once linked tasks
// or sub-items exist.
//
// Resolution order:
//   - No linked task ids and at least one sub-item: the mean of the
//     sub-item percentages, clamped to 100.
//   - No linked task ids and no sub-items: the stored progress value.
//   - Linked task ids resolving to zero known tasks: the stored progress
//     value.
//   - Otherwise: the mean of the contributing percentages across the
//     matching active and completed tasks, clamped to 100. A completed task
//     with no recorded percentage contributes 100; an active one
//     contributes 0.
func ComputeObjectiveProgress(obj *Objective, tasks, completedTasks []Task) float64 {
	if len(obj.TaskIDs) == 0 {
		if len(obj.SubItems) > 0 {
			total := 0.0
			for _, item := range obj.SubItems {
				total += item.Percentage
			}
			return min100(total / float64(len(obj.SubItems)))
		}
		return obj.Progress
	}

	linked := make(map[string]struct{}, len(obj.TaskIDs))
	for _, id := range obj.TaskIDs {
		linked[id] = struct{}{}
	}

	count := 0
	total := 0.0
	for _, t := range tasks {
		if _, ok := linked[t.ID]; !ok {
			continue
		}
		count++
		total += t.Percentage
	}
	for _, t := range completedTasks {
		if _, ok := linked[t.ID]; !ok {
			continue
		}
		count++
		if t.Percentage == 0 {
			total += 100
		} else {
			total += t.Percentage
		}
	}

	if count == 0 {
		return obj.Progress
	}
	return min100(total / float64(count))
}

func min100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
