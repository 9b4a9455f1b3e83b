package fetcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/travigo/signboard/pkg/board"
)

// TextFile serves the lines of a local file, placeholders included
type TextFile struct {
	Path string
}

func (t *TextFile) Name() string {
	return fmt.Sprintf("text-file/%s", t.Path)
}

func (t *TextFile) Fetch(ctx context.Context) (*board.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	text := strings.ReplaceAll(string(contents), "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return &board.Payload{}, nil
	}

	return &board.Payload{Lines: strings.Split(text, "\n")}, nil
}
