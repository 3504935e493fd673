package gitsync

import "errors"

// Sentinel kinds for sync errors.
var (
	ErrNoRemoteRepo = errors.New("no remote repository configured")
	ErrNoLocalRepo  = errors.New("no local git repository")
	ErrRemoteStatus = errors.New("remote API rejected request")
)
