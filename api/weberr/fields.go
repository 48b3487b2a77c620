package weberr

import "errors"

type fielder interface {
	Fields() map[string]interface{}
}

// Fields returns the log fields attached to any error in err's chain. The
// request logger calls it on every failed request.
func Fields(err error) (fields map[string]interface{}, ok bool) {
	var fe fielder
	if errors.As(err, &fe) {
		return fe.Fields(), true
	}
	return nil, false
}

type fieldsError struct {
	error
	fields map[string]interface{}
}

func (e *fieldsError) Fields() map[string]interface{} { return e.fields }

func (e *fieldsError) Unwrap() error { return e.error }
