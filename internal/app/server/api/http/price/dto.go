package price

import "pricelist/internal/domain/price"

type probeInput struct{}

type probeOutput struct{}

type listOutput struct {
	// The wire format is a bare JSON array, as established by the
	// original deployment; polling clients depend on it.
	Body []price.Price
}

type findInput struct {
	ID string `path:"id" doc:"Price record id"`
}

type findOutput struct {
	Body price.Price
}

type createInput struct {
	Body price.Fields
}

type createOutput struct {
	Body price.Price
}

type updateInput struct {
	ID   string `path:"id" doc:"Price record id"`
	Body price.Fields
}

type updateOutput struct {
	Body price.Price
}

type deleteInput struct {
	ID string `path:"id" doc:"Price record id"`
}

type deleteOutput struct{}
