package middleware

import "github.com/danielgtaylor/huma/v2"

// Container accumulates the middleware chain for the next handler being
// wired. GetAllAndClear hands the chain over and resets the container so
// it can be reused for the following handler.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.mws = append(c.mws, mw)
}

func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.mws
	c.mws = nil
	return mws
}
