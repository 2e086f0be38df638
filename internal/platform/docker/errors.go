package docker

import (
	"errors"
	"strings"
)

var notFoundMarkers = []string{
	"no such container",
	"no such object",
	"no such network",
	"no such image",
	"not found",
}

var alreadyExistsMarkers = []string{
	"already exists",
	"is already in use",
}

// IsNotFound reports whether err means the target instance, network or image does not exist.
func IsNotFound(err error) bool {
	return stderrContains(err, notFoundMarkers...)
}

// IsAlreadyExists reports whether err means a resource of that name already exists.
func IsAlreadyExists(err error) bool {
	return stderrContains(err, alreadyExistsMarkers...)
}

// IsNotRunning reports whether a stop failed because the instance was not running.
func IsNotRunning(err error) bool {
	return stderrContains(err, "is not running")
}

func stderrContains(err error, markers ...string) bool {
	if err == nil {
		return false
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	stderr := strings.ToLower(cmdErr.Stderr)
	for _, m := range markers {
		if strings.Contains(stderr, m) {
			return true
		}
	}
	return false
}
