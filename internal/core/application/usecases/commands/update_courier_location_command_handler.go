package commands

import (
	"context"
)

// UpdateCourierLocationCommandHandler persists courier position reports.
// Reports arrive frequently, so the handler does the minimum: load, update
// the position, save.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierLocationCommandHandler creates a handler for location reports.
func NewUpdateCourierLocationCommandHandler(uowFactory CourierUoWFactory) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location report.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
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

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.ReportLocation(cmd.Position()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
