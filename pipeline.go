package gridprompt

import "fmt"

// applyInput runs a field's transformer and validator over the raw input
// line. The returned value is always the transformed candidate; the session
// stores it as the edit buffer so the displayed value is never the raw line.
// A nil error means the candidate passes.
func applyInput(f Field, raw string) (string, error) {
	value := raw
	if f.Transform != nil {
		value = f.Transform(value)
	}
	if f.Validate != nil {
		if err := f.Validate(value); err != nil {
			return value, err
		}
	}
	return value, nil
}

// sweepErrors validates every committed value in the grid. Empty required
// fields fail with "<id> is required"; non-empty values run their validator.
// Returns nil when every field passes. The sweep only reads committed values,
// never an in-progress edit buffer, and is idempotent over unchanged state.
func sweepErrors(grid Grid, values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range grid.fields() {
		value := values[f.ID]
		if value == "" {
			if f.Required {
				errs[f.ID] = fmt.Sprintf("%s is required", f.ID)
			}
			continue
		}
		if f.Validate != nil {
			if err := f.Validate(value); err != nil {
				errs[f.ID] = err.Error()
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
