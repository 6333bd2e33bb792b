package ports

import "context"

// Clipboard reads and writes plain text on the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
	ReadText(ctx context.Context) (string, error)
}
