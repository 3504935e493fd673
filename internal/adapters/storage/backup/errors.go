package backup

import "errors"

// Sentinel kinds for backup chain errors.
var (
	ErrSnapshot = errors.New("backup snapshot incomplete")
	ErrRecover  = errors.New("backup recovery failed")
)
