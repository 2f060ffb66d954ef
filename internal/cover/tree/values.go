package tree

// values holds the payload of each inserted point, addressed by Point.slot.
// Access is guarded by the owning Tree's lock.
type values[T any] struct {
	data []T
}

func (v *values[T]) put(value T) int32 {
	v.data = append(v.data, value)
	return int32(len(v.data) - 1)
}

func (v *values[T]) value(slot int32) (T, bool) {
	var zero T
	if slot < 0 || int(slot) >= len(v.data) {
		return zero, false
	}
	return v.data[slot], true
}
