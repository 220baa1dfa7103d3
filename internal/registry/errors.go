package registry

import "errors"

// Error categories. Network errors are transient (cache fallback applies);
// the rest are permanent and surface immediately.
var (
	ErrNetwork       = errors.New("registry network error")
	ErrNotFound      = errors.New("registry not found")
	ErrParse         = errors.New("registry parse error")
	ErrAssetNotFound = errors.New("component asset not found")
	ErrDecode        = errors.New("component asset decode error")
)
