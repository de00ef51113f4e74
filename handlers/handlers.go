package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/address-book/datastores"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

// withErrorHook turns store errors into their HTTP status and hands every
// error to hook, if any, before huma writes the response.
func withErrorHook[I, O any](handler handler[I, O], hook func(context.Context, error)) handler[I, O] {
	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err == nil {
			return o, nil
		}
		if errors.Is(err, ds.ErrObjectNotFound) {
			err = huma.Error404NotFound("contact not found", err)
		}
		if hook != nil {
			hook(ctx, err)
		}
		return nil, err
	}
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

func opStatus(code int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.DefaultStatus = code }
}
