package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidScheduleIDs = errors.New("schedule_id must be a list of integers")

// ScheduleIDs is the set of schedule slots a request refers to.
//
// Clients send it either as a native JSON array ([1, 2] or ["1", "2"]) or as a
// string holding a JSON array ("[1,2]"); both decode to the same value.
// Duplicates are dropped, first occurrence order is kept.
type ScheduleIDs []int64

func (s *ScheduleIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	switch data[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return ErrInvalidScheduleIDs
		}
		ids, err := ParseScheduleIDs([]string{encoded})
		if err != nil {
			return err
		}
		*s = ids
		return nil
	case '[':
		ids, err := parseJSONArray(data)
		if err != nil {
			return err
		}
		*s = dedupe(ids)
		return nil
	default:
		id, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return ErrInvalidScheduleIDs
		}
		*s = ScheduleIDs{id}
		return nil
	}
}

// Int64s returns the ids as a plain slice
func (s ScheduleIDs) Int64s() []int64 {
	return []int64(s)
}

// ParseScheduleIDs normalizes raw query/form values. Each value is either a
// single integer or a JSON array encoded as a string.
func ParseScheduleIDs(values []string) (ScheduleIDs, error) {
	var ids []int64

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		if strings.HasPrefix(v, "[") {
			parsed, err := parseJSONArray([]byte(v))
			if err != nil {
				return nil, err
			}
			ids = append(ids, parsed...)
			continue
		}

		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidScheduleIDs, v)
		}
		ids = append(ids, id)
	}

	return dedupe(ids), nil
}

func parseJSONArray(data []byte) ([]int64, error) {
	var items []json.Number
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, ErrInvalidScheduleIDs
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := item.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidScheduleIDs, item.String())
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func dedupe(ids []int64) ScheduleIDs {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make(ScheduleIDs, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
