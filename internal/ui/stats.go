package ui

import "sync/atomic"

type Stats struct {
	TotalImages   atomic.Int64
	TotalBytes    atomic.Int64
	TotalEpisodes atomic.Int64
	Skipped       atomic.Int64
}
