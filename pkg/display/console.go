package display

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/travigo/signboard/pkg/util"
)

const clearScreen = "\033[H\033[2J"

// Console writes frames as plain text, mostly for development without a panel
type Console struct {
	Writer      io.Writer
	ClearScreen bool

	mutex sync.Mutex
}

func NewConsole(writer io.Writer, clearBetweenFrames bool) *Console {
	return &Console{
		Writer:      writer,
		ClearScreen: clearBetweenFrames,
	}
}

func (c *Console) Show(rows []string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	writer := bufio.NewWriter(c.Writer)

	if c.ClearScreen {
		writer.WriteString(clearScreen)
	}

	width := 0
	for _, row := range rows {
		width = max(width, util.RuneLength(row))
	}

	border := "+" + strings.Repeat("-", width) + "+\n"
	writer.WriteString(border)
	for _, row := range rows {
		writer.WriteString("|" + row + strings.Repeat(" ", width-util.RuneLength(row)) + "|\n")
	}
	writer.WriteString(border)

	return writer.Flush()
}

func (c *Console) Clear() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.ClearScreen {
		return nil
	}

	_, err := io.WriteString(c.Writer, clearScreen)
	return err
}

func (c *Console) Close() error {
	return nil
}
