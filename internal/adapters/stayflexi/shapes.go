package stayflexi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The bookings endpoint has shipped three incompatible body shapes over
// time: a flat list, an object with a "bookings" key, and a nested
// data/allRoomReservations structure grouping reservations per room.
// Each shape gets its own adapter, selected by structural inspection.

// blockStatuses mark administrative room blocks in the nested shape.
// Blocks are not guest bookings and are dropped before transformation.
var blockStatuses = map[string]struct{}{
	"BLOCKED":       {},
	"ADMIN_BLOCKED": {},
	"OUT_OF_ORDER":  {},
}

func extractBookings(body []byte) ([]map[string]any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("bookings: decode response: %w", err)
	}

	switch v := payload.(type) {
	case []any:
		return asObjects(v), nil
	case map[string]any:
		if list, ok := v["bookings"].([]any); ok {
			return asObjects(list), nil
		}
		if data, ok := v["data"].(map[string]any); ok {
			if rooms, ok := data["allRoomReservations"].([]any); ok {
				return flattenRoomReservations(rooms), nil
			}
		}
		return nil, fmt.Errorf("bookings: unrecognized response shape")
	default:
		return nil, fmt.Errorf("bookings: unrecognized response shape")
	}
}

func asObjects(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// flattenRoomReservations merges each room's metadata into its
// reservation entries and filters out administrative blocks.
func flattenRoomReservations(rooms []any) []map[string]any {
	var out []map[string]any
	for _, r := range rooms {
		room, ok := r.(map[string]any)
		if !ok {
			continue
		}
		entries, ok := room["reservations"].([]any)
		if !ok {
			continue
		}
		for _, e := range entries {
			res, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if isBlock(res) {
				continue
			}
			merged := make(map[string]any, len(res)+2)
			for k, v := range res {
				merged[k] = v
			}
			// reservation entries carry no room identity of their own
			if _, ok := merged["roomId"]; !ok {
				if v, ok := room["roomId"]; ok {
					merged["roomId"] = v
				}
			}
			if _, ok := merged["roomType"]; !ok {
				if v, ok := room["roomTypeName"]; ok {
					merged["roomType"] = v
				} else if v, ok := room["roomType"]; ok {
					merged["roomType"] = v
				}
			}
			out = append(out, merged)
		}
	}
	return out
}

func isBlock(res map[string]any) bool {
	for _, key := range []string{"reservationStatus", "status"} {
		if s, ok := res[key].(string); ok {
			if _, blocked := blockStatuses[strings.ToUpper(strings.TrimSpace(s))]; blocked {
				return true
			}
		}
	}
	return false
}
