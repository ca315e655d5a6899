package interfaces

import "context"

// Headlines provides recent news headlines for prompt context. Best effort:
// callers treat an error the same as zero headlines.
type Headlines interface {
	Recent(ctx context.Context, max int) ([]string, error)
}
