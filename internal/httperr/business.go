package httperr

import "errors"

// BusinessError is an expected outcome of a use case, identified by a
// stable snake_case code that clients can switch on.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// Code returns the business code carried anywhere in err's chain.
func Code(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

func IsBusiness(err error, code string) bool {
	got, ok := Code(err)
	return ok && got == code
}
