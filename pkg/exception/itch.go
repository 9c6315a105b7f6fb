package exception

import "github.com/yanun0323/errors"

// Decode errors
var (
	ErrUnknownMessageType = errors.New("itch: unknown message type")
	ErrMalformedRecord    = errors.New("itch: record shorter than message layout")
)
