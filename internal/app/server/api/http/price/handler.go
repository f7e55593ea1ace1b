package price

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pricelist/internal/domain/price"
)

type Handler struct {
	service    price.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service price.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.probeOp(), h.probe)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

// probe only exists so clients can run a no-body reachability check;
// the auth middleware has already done the interesting work by the time
// we get here.
func (h *Handler) probe(_ context.Context, _ *probeInput) (*probeOutput, error) {
	return &probeOutput{}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	prices, err := h.service.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list prices", err)
	}

	return &listOutput{Body: prices}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	p, err := h.service.Find(ctx, input.ID)
	if err != nil {
		if errors.Is(err, price.ErrNotFound) {
			return nil, huma.Error404NotFound("price not found")
		}
		return nil, huma.Error500InternalServerError("failed to find price", err)
	}

	return &findOutput{Body: *p}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	created, err := h.service.Create(ctx, input.Body)
	if err != nil {
		return nil, h.mapWriteError(err, "failed to create price")
	}

	return &createOutput{Body: *created}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	updated, err := h.service.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, h.mapWriteError(err, "failed to update price")
	}

	return &updateOutput{Body: *updated}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, h.mapWriteError(err, "failed to delete price")
	}

	return &deleteOutput{}, nil
}

func (h *Handler) mapWriteError(err error, msg string) error {
	var vErr *price.ValidationError
	switch {
	case errors.As(err, &vErr):
		return huma.Error400BadRequest(vErr.Error())
	case errors.Is(err, price.ErrDuplicateCode):
		return huma.Error409Conflict("codigo already registered")
	case errors.Is(err, price.ErrNotFound):
		return huma.Error404NotFound("price not found")
	default:
		h.log.Error(msg, "error", err)
		return huma.Error500InternalServerError(msg, err)
	}
}
