package components

// Body holds per-entity identity and draw size.
type Body struct {
	ID     uint32
	Radius float64
}
