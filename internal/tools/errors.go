package tools

import "errors"

var (
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrUnknownTool      = errors.New("unknown tool")
	ErrSchema           = errors.New("invalid tool schema")
)
