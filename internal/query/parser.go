// Package query turns free text of the form "key=value, key=value" into a
// partial attribute record.
package query

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"materia/internal/domain"
)

// ErrNotFinite rejects values such as "inf" or "NaN" that ParseFloat accepts.
var ErrNotFinite = errors.New("value must be a finite number")

// Parse splits text on commas and each segment on its first '='. Segments
// without '=' are skipped. A value that is not a number fails the whole parse.
func Parse(text string) (domain.Query, error) {
	q := make(domain.Query)
	for _, seg := range strings.Split(text, ",") {
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = ErrNotFinite
		}
		if err != nil {
			return nil, &domain.ParseError{Segment: strings.TrimSpace(seg), Err: err}
		}
		q[strings.TrimSpace(key)] = v
	}
	return q, nil
}

// Unknown returns the query keys that are not part of schema, sorted.
// Such keys are ignored during ranking.
func Unknown(q domain.Query, schema []string) []string {
	known := make(map[string]struct{}, len(schema))
	for _, col := range schema {
		known[col] = struct{}{}
	}
	var out []string
	for k := range q {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

