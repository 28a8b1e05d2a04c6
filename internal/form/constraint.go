package form

// Constraint validates the bound data of a form after submission.
type Constraint func(data any) error

// NotBlank rejects nil values and empty strings.
func NotBlank() Constraint {
	return func(data any) error {
		if isEmpty(data) {
			return ErrNotBlank
		}
		return nil
	}
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case map[string]any:
		for _, c := range x {
			if !isEmpty(c) {
				return false
			}
		}
		return true
	}
	return false
}
