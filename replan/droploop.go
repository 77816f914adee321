package replan

import "elasticreplan/model"

// dropReason is stamped on a stop the core itself chose to remove to
// satisfy budget/time constraints, as opposed to one dropped directly by
// a disruption in stage 1.
const dropReason = "Removed to satisfy budget/time constraints"

// selectDroppable picks the index (within stops, excluding index 0) of
// the next stop to drop when no route satisfies the constraints:
// NICE_TO_HAVE stops are preferred, scanned from the end, falling back to
// the last MUST_VISIT stop if none remain. Returns -1 if nothing is
// droppable. Grounded on
// _examples/original_source/backend/engine/elastic_replan.py's
// drop_lowest_priority.
func selectDroppable(stops []*model.Stop) int {
	for i := len(stops) - 1; i >= 1; i-- {
		if stops[i].Priority == model.NiceToHave {
			return i
		}
	}
	for i := len(stops) - 1; i >= 1; i-- {
		return i
	}
	return -1
}
