package coordxform

import "github.com/cockroachdb/errors"

// Error categories. Every error returned by this package is marked with one
// or more of these so callers can classify it with errors.Is.
var (
	// ErrConfiguration is returned when a transform cannot be built: a
	// missing or invalid projection parameter, incompatible prime meridian
	// units, a singular affine matrix.
	ErrConfiguration = errors.New("invalid transform configuration")

	// ErrUnsupported is returned by the factory for source/target pairs it
	// has no plan for. It is always also an ErrConfiguration.
	ErrUnsupported = errors.New("transformation not supported")

	// ErrDomain is returned when a point lies outside the valid domain of a
	// transform.
	ErrDomain = errors.New("coordinate outside transform domain")

	// ErrConvergence is returned when an iterative inverse does not reach its
	// tolerance within its iteration cap.
	ErrConvergence = errors.New("iteration did not converge")

	// ErrInvalidArgument is returned for malformed batch buffers.
	ErrInvalidArgument = errors.New("invalid argument")
)

func configErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrConfiguration)
}

func unsupportedErrorf(format string, args ...interface{}) error {
	return errors.Mark(configErrorf(format, args...), ErrUnsupported)
}

func domainErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrDomain)
}

func convergenceErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrConvergence)
}

func argumentErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}
