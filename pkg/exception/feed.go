package exception

import "github.com/yanun0323/errors"

// Feed errors
var (
	ErrRecordTruncated = errors.New("feed: truncated record")
	ErrRecordTooLarge  = errors.New("feed: record exceeds size limit")
	ErrFeedTruncated   = errors.New("feed: input ended before session close")
)
