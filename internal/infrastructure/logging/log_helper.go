package logging

// zapFields flattens an extra map into zap's alternating key/value form.
func zapFields(extra map[ExtraKey]any) []any {
	fields := make([]any, 0, 2*len(extra))
	for key, value := range extra {
		fields = append(fields, string(key), value)
	}
	return fields
}

// zeroFields converts an extra map into the string-keyed map zerolog wants.
func zeroFields(extra map[ExtraKey]any) map[string]any {
	fields := make(map[string]any, len(extra))
	for key, value := range extra {
		fields[string(key)] = value
	}
	return fields
}
