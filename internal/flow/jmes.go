package flow

import (
	"clientreg/internal/types"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"
)

// EvalAny returns the raw value selected by the JMESPath expression.
// It is safe to pass any decoded JSON (map[string]any, []any, etc.)
// It will return nil and no error if the expression does not match anything.
func EvalAny(expression string, data any) (any, error) {
	v, err := jmespath.Search(expression, data)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return v, nil
}

// FilterRecords applies a JMESPath expression to the client list, seen as a JSON array
// of records, e.g. "[?active]" or "[?contains(name, 'Ana')]". The expression must select
// client objects; an empty expression returns recs unchanged.
func FilterRecords(expression string, recs []types.ClientRecord) ([]types.ClientRecord, error) {
	if strings.TrimSpace(expression) == "" {
		return recs, nil
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return nil, err
	}
	var doc []any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	v, err := EvalAny(expression, doc)
	if err != nil {
		return nil, types.Err(types.ErrInvalidFilter, err, "")
	}
	if v == nil {
		return []types.ClientRecord{}, nil
	}
	selected, ok := v.([]any)
	if !ok {
		return nil, types.Err(types.ErrInvalidFilter, nil, "expression must select a list of clients")
	}
	b, err := json.Marshal(selected)
	if err != nil {
		return nil, err
	}
	out := []types.ClientRecord{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, types.Err(types.ErrInvalidFilter, err, "expression must select a list of clients")
	}
	// Projections decode into records that were never stored; only whole stored records may come back.
	byID := make(map[int]types.ClientRecord, len(recs))
	for _, r := range recs {
		byID[r.ID] = r
	}
	for _, r := range out {
		if stored, ok := byID[r.ID]; !ok || stored != r {
			return nil, types.Err(types.ErrInvalidFilter, nil, "expression must select whole client records")
		}
	}
	return out, nil
}
