package inventory

import (
	"github.com/giantswarm/microerror"
)

var invalidConfigError = &microerror.Error{
	Kind: "invalidConfigError",
}

// IsInvalidConfig asserts invalidConfigError.
func IsInvalidConfig(err error) bool {
	return microerror.Cause(err) == invalidConfigError
}

var notFoundError = &microerror.Error{
	Kind: "notFoundError",
}

// IsNotFound asserts notFoundError.
func IsNotFound(err error) bool {
	return microerror.Cause(err) == notFoundError
}

var invalidVarsError = &microerror.Error{
	Kind: "invalidVarsError",
}

// IsInvalidVars asserts invalidVarsError.
func IsInvalidVars(err error) bool {
	return microerror.Cause(err) == invalidVarsError
}
