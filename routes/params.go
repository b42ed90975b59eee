package routes

import (
	"net/http"
	"strconv"
)

// pagination reads page/limit from the query string. Absent or non-positive
// values fall back to page=1, limit=10; anything parsable passes through
// unchanged.
func pagination(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	return positiveInt(q.Get("page"), 1), positiveInt(q.Get("limit"), 10)
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// toInt coerces a decoded JSON value to an int. Non-numeric input coerces to
// 0 rather than failing; this lenient policy is deliberate and covered by
// tests, callers must not tighten it.
func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// str extracts a JSON string value, returning "" for anything else.
func str(v any) string {
	s, _ := v.(string)
	return s
}

// strList extracts a list of JSON strings; absent or malformed input yields
// an empty list, never nil and never an error.
func strList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
