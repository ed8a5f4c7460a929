package shared

import "sort"

// Properties is the static directory from PMS hotel id to display name.
// Edited by hand when a property is onboarded; not runtime state.
var Properties = map[string]string{
	"28482": "Sea Breeze Resort",
	"28483": "Hilltop Retreat",
	"29117": "Palm Grove Villas",
	"30256": "Lakeview Residency",
	"31044": "City Central Suites",
}

// PropertyIDs returns the directory's hotel ids in a stable order, for
// whole-directory sync runs.
func PropertyIDs() []string {
	ids := make([]string, 0, len(Properties))
	for id := range Properties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
