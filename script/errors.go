package script

import "errors"

var (
	ErrEmptySource  = errors.New("script: empty source")
	ErrScriptFailed = errors.New("script: hook returned an error")
	ErrNoWatcher    = errors.New("script: registry has no directory to watch")
)
