package world

import "errors"

var (
	ErrRequestFailed = errors.New("request failed")
	ErrEncodeBody    = errors.New("failed to encode request body")
)
