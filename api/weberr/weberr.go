// Package weberr lets a handler attach an HTTP response and log fields to
// the error it returns. The handler stays a plain `return err`; at the edge
// the Errors middleware unwraps the response and renders it (a missing
// vehicle becomes its 404, a bad credential its 401) and the request logger
// merges the fields into its entry. Errors carrying no response render as a
// generic 500.
package weberr

// Opt decorates an error on its way out of a handler.
type Opt func(error) error

// Wrap applies every opt to err in order.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse attaches the body and status the middleware should answer
// the request with when this error surfaces.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches structured fields for the request log.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}
