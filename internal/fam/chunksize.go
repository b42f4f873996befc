package fam

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
)

// ErrChunkSize means the memory configuration cannot hold even one dataset
// row; the run must not start.
var ErrChunkSize = errors.New("chunk size must be at least one row; check ram-fraction and row-bytes settings")

// ChunkRows returns how many projected dataset rows fit in the configured
// fraction of currently available RAM. Deterministic for fixed inputs so
// repeated runs cover identical chunk boundaries.
func ChunkRows(fraction float64, availRAM uint64, rowBytes float64) (int64, error) {
	if fraction <= 0 || fraction > 1 {
		return 0, fmt.Errorf("ram fraction %v out of range (0, 1]: %w", fraction, ErrChunkSize)
	}
	if rowBytes <= 0 {
		return 0, fmt.Errorf("row byte cost %v must be positive: %w", rowBytes, ErrChunkSize)
	}

	rows := int64(fraction * float64(availRAM) / rowBytes)
	if rows < 1 {
		return 0, ErrChunkSize
	}
	return rows, nil
}

// AdaptiveChunkRows is ChunkRows against the machine's available memory.
func AdaptiveChunkRows(fraction, rowBytes float64) (int64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("probe available memory: %w", err)
	}
	printIf(VerboseThreadProgress, "%s of RAM available, budgeting %.0f%%",
		humanize.Bytes(vm.Available), fraction*100)
	return ChunkRows(fraction, vm.Available, rowBytes)
}

// PassCount is how many chunks one full scan takes, for progress reporting.
func PassCount(totalRows, chunkRows int64) int {
	if totalRows <= 0 || chunkRows <= 0 {
		return 0
	}
	return int((totalRows + chunkRows - 1) / chunkRows)
}
