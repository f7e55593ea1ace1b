package client

import "pricelist/internal/domain/price"

// View is everything a presentation layer needs to paint the screen.
// The core never touches the UI directly; it hands a View to whatever
// Renderer it was given.
type View struct {
	Prices        []price.Price
	Brands        []string
	SelectedBrand string
	SearchTerm    string
	Online        bool
}

// Renderer paints a View. Implementations must not call back into the
// core from Render.
type Renderer interface {
	Render(view View)
}

// Notifier surfaces user-facing messages. Success and Info fire during
// the optimistic path, Error on validation failures and rollbacks.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// NopRenderer discards views. Used where no presentation is attached.
type NopRenderer struct{}

func (NopRenderer) Render(View) {}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Info(string)    {}
func (NopNotifier) Error(string)   {}
