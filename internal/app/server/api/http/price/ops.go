package price

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) probeOp() huma.Operation {
	return huma.Operation{
		OperationID: "precos-probe",
		Method:      http.MethodHead,
		Path:        "/api/precos",
		Summary:     "Liveness probe",
		Description: "Cheap reachability check used by clients to maintain their online/offline flag.",
		Tags:        []string{"precos"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "precos-list",
		Method:      http.MethodGet,
		Path:        "/api/precos",
		Summary:     "List all prices",
		Tags:        []string{"precos"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "precos-find",
		Method:      http.MethodGet,
		Path:        "/api/precos/{id}",
		Summary:     "Get a price by id",
		Tags:        []string{"precos"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "precos-create",
		Method:        http.MethodPost,
		Path:          "/api/precos",
		Summary:       "Create a price",
		Description:   "Creates a price with a server-assigned id and timestamp.",
		Tags:          []string{"precos"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "precos-update",
		Method:      http.MethodPut,
		Path:        "/api/precos/{id}",
		Summary:     "Update a price",
		Tags:        []string{"precos"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "precos-delete",
		Method:        http.MethodDelete,
		Path:          "/api/precos/{id}",
		Summary:       "Delete a price",
		Tags:          []string{"precos"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
