package layout

type Row struct {
	Left  string
	Right string
}

// Buffer collects the rows of one frame, refusing anything past its capacity
type Buffer struct {
	rows     []Row
	capacity int
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		rows:     make([]Row, 0, capacity),
		capacity: capacity,
	}
}

func (b *Buffer) Append(left string, right string) bool {
	if b.Full() {
		return false
	}

	b.rows = append(b.rows, Row{Left: left, Right: right})
	return true
}

// Blank skips a row
func (b *Buffer) Blank() bool {
	return b.Append("", "")
}

func (b *Buffer) Len() int {
	return len(b.rows)
}

func (b *Buffer) Remaining() int {
	return b.capacity - len(b.rows)
}

func (b *Buffer) Full() bool {
	return len(b.rows) >= b.capacity
}

func (b *Buffer) Rows() []Row {
	return b.rows
}

// Compose renders every row for a grid of the given width
func (b *Buffer) Compose(columns int) []string {
	lines := make([]string, 0, len(b.rows))
	for _, row := range b.rows {
		lines = append(lines, ComposeRow(row.Left, row.Right, columns))
	}

	return lines
}
