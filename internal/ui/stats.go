package ui

import "sync/atomic"

type Stats struct {
	TotalPages      atomic.Int64
	TotalBytes      atomic.Int64
	TotalChapters   atomic.Int64
	SkippedChapters atomic.Int64
	FailedChapters  atomic.Int64
}
