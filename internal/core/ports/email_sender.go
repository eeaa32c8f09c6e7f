package ports

import "context"

// EmailSender delivers transactional email, e.g. payment receipts.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
