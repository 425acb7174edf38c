package marshal

// Applier writes one field from a source value onto a target under
// construction. Later appliers can observe earlier writes; order is chosen
// by the caller.
type Applier[S, T any] func(src S, dst *T) error

// Build constructs a fresh target from the factory and runs each applier in
// order. Appliers run unconditionally: an absent source field is written
// as-is, so creation renders absence as the zero value rather than skipping
// the write.
func Build[S, T any](newTarget func() *T, src S, appliers ...Applier[S, T]) (*T, error) {
	dst := newTarget()
	for _, apply := range appliers {
		if err := apply(src, dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Combine runs the appliers over a copy of an existing target. The semantics
// match Build except the starting point already holds prior values: an
// applier that reads an absent source field and writes anyway erases the
// prior value. Callers choose per field whether to include an applier, not
// the combinator. On failure the existing value is returned unchanged.
func Combine[S, T any](existing T, src S, appliers ...Applier[S, T]) (T, error) {
	target := existing
	for _, apply := range appliers {
		if err := apply(src, &target); err != nil {
			return existing, err
		}
	}
	return target, nil
}

// ApplyWhen runs write when force is set, or when the include predicate
// holds for the value. This is the projection switch: force inclusion, or
// defer to the value's own embedded marker.
func ApplyWhen[T, V any](force bool, include func(V) bool, dst *T, value V, write func(*T, V)) {
	if force || (include != nil && include(value)) {
		write(dst, value)
	}
}
