package bumpfill

// Destroyer is implemented by element types that own something beyond their
// bytes. When a fill is abandoned, Destroy is called once for every element
// already constructed, in index order.
type Destroyer interface {
	Destroy()
}

// destroyFunc picks the cleanup for T: an explicit hook, the pointer or value
// Destroy method, or a per-element check for interface element types.
func destroyFunc[T any](explicit func(*T)) func(*T) {
	if explicit != nil {
		return explicit
	}
	if _, ok := any((*T)(nil)).(Destroyer); ok {
		return func(p *T) {
			any(p).(Destroyer).Destroy()
		}
	}
	return func(p *T) {
		if d, ok := any(*p).(Destroyer); ok {
			d.Destroy()
		}
	}
}
