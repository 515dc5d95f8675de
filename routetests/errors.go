package routetests

import "fmt"

// ConfigError is returned when route declarations are invalid: a missing server, a missing
// route list, a nil modifier, an expectation that can never be compared, or misuse of a
// RouteScope. These are reported when the routes are declared, not when they run.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "route test configuration error: " + e.Message
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}
