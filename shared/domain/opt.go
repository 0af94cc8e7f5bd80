package domain

// Opt holds the value of a column that may be excluded from a projection or
// stored as NULL. The zero value means the column was not selected at all,
// which is a different state than a selected NULL.
type Opt[T any] struct {
	loaded bool
	valid  bool
	value  T
}

// Some returns an Opt holding a concrete stored value.
func Some[T any](value T) Opt[T] {
	return Opt[T]{loaded: true, valid: true, value: value}
}

// Null returns an Opt for a column that was selected and is NULL in storage.
func Null[T any]() Opt[T] {
	return Opt[T]{loaded: true}
}

// Loaded reports whether the column was part of the projection.
func (o Opt[T]) Loaded() bool { return o.loaded }

// Valid reports whether the column was selected and is not NULL.
func (o Opt[T]) Valid() bool { return o.loaded && o.valid }

// Get returns the stored value and whether it is usable (selected, not NULL).
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Arg converts the Opt into a driver bind parameter. Unloaded and NULL states
// both bind as NULL.
func (o Opt[T]) Arg() any {
	if !o.Valid() {
		return nil
	}
	return o.value
}
