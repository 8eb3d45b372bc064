package main

import (
	"errors"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
	"github.com/dmitrymomot/vanitystore/pkg/config"
)

// Exit codes, one per error kind.
const (
	exitFailure         = 1
	exitConfig          = 2
	exitConnection      = 3
	exitResolution      = 4
	exitPermission      = 5
	exitInvalidArgument = 6
	exitStorage         = 7
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, addrstore.ErrConfig), errors.Is(err, config.ErrParsingConfig),
		errors.Is(err, config.ErrLoadingEnvFile):
		return exitConfig
	case errors.Is(err, addrstore.ErrConnection):
		return exitConnection
	case errors.Is(err, addrstore.ErrResolution):
		return exitResolution
	case errors.Is(err, addrstore.ErrPermission):
		return exitPermission
	case errors.Is(err, addrstore.ErrInvalidArgument):
		return exitInvalidArgument
	case errors.Is(err, addrstore.ErrWrite), errors.Is(err, addrstore.ErrRead):
		return exitStorage
	default:
		return exitFailure
	}
}
