package display

// Sink receives composed frames. Rows are already padded to the grid width.
type Sink interface {
	Show(rows []string) error
	Clear() error
	Close() error
}
