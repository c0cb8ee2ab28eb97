package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question and reads one line of input. Anything
// other than y or yes declines, including empty input and EOF.
func Confirm(ctx context.Context, reader *NonBlockingReader, writer io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprint(writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := reader.ReadString(ctx, '\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
