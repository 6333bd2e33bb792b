//go:build !js

package native

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

func systemClipboardAvailable() bool {
	return !clipboard.Unsupported
}

// systemClipboard is the OS clipboard. The underlying calls are not
// cancellable; ctx is only checked before they start.
type systemClipboard struct{}

func (systemClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func (systemClipboard) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	return text, nil
}
