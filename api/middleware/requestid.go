package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/ridgeline-motors/dealership/api/web"
)

const (
	RequestIDHeader = "X-Request-Id"

	// Inbound ids longer than this are truncated rather than trusted.
	requestIDLengthLimit = 128
)

type reqIDKeyCtx int

const reqIDKey reqIDKeyCtx = 1

// RequestID honors an inbound X-Request-Id header and generates a fresh id
// otherwise, making every log line for the request correlatable.
func RequestID() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			} else if len(id) > requestIDLengthLimit {
				id = id[:requestIDLengthLimit]
			}
			ctx = context.WithValue(ctx, reqIDKey, id)

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func ContextRequestID(ctx context.Context) (reqID string) {
	id := ctx.Value(reqIDKey)
	if id != nil {
		reqID = id.(string)
	}
	return
}
