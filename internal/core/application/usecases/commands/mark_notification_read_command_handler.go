package commands

import (
	"context"

	"swiftparcel/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler flips the read flag on a notification.
// A notification that belongs to a different customer is reported as not
// found rather than revealing its existence.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for marking
// notifications as read.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-read command. Marking an already-read
// notification is a no-op success.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()

	aggregate, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("notification", cmd.NotificationID().String())
	}

	if aggregate.IsRead() {
		return uow.Commit(ctx)
	}

	aggregate.MarkRead()

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
