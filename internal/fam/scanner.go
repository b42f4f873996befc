package fam

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/afero"
)

// column names of the substitutions dataset; fixed by its publisher
const (
	colUID     = "uniprot_id"
	colVariant = "protein_variant"
	colScore   = "am_pathogenicity"
)

// Scanner streams the gzip compressed substitutions TSV in bounded chunks.
// Each Scan starts over from row 0, holds at most one chunk in memory and
// hands it to visit before reading the next.
type Scanner struct {
	FS        afero.Fs
	Path      string
	ChunkRows int64
}

// ErrStopScan lets a visit callback end a pass early without error, once
// nothing is left to match.
var ErrStopScan = errors.New("stop scan")

// Scan reads the whole dataset chunk by chunk. A schema problem (missing
// columns, malformed score) aborts the pass immediately: continuing would
// silently under-report matches.
func (s *Scanner) Scan(ctx context.Context, visit func(*Chunk) error) error {
	if s.ChunkRows < 1 {
		return ErrChunkSize
	}

	f, err := s.FS.Open(s.Path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("decompress dataset: %w", err)
	}
	defer gz.Close()

	r := csv.NewReader(gz)
	r.Comma = '\t'
	r.Comment = '#' // the published file opens with license comment lines
	r.FieldsPerRecord = -1

	uid, variant, score, err := datasetColumns(r)
	if err != nil {
		return err
	}

	var offset int64
	chunk := newChunk(0, s.ChunkRows)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read dataset row %d: %w", offset, err)
		}
		if len(record) <= uid || len(record) <= variant || len(record) <= score {
			return fmt.Errorf("dataset row %d has %d columns", offset, len(record))
		}

		val, err := strconv.ParseFloat(record[score], 64)
		if err != nil {
			return fmt.Errorf("dataset row %d: bad score %q", offset, record[score])
		}

		chunk.add(DatasetRow{UID: record[uid], Variant: record[variant], Score: val})
		offset++

		if int64(chunk.Len()) >= s.ChunkRows {
			if err := visit(chunk); err != nil {
				return err
			}
			chunk = newChunk(offset, s.ChunkRows) // previous chunk is dropped here
		}
	}

	if chunk.Len() > 0 {
		return visit(chunk)
	}
	return nil
}

// datasetColumns reads the header row and locates the three projected
// columns, erroring on any unexpected schema.
func datasetColumns(r *csv.Reader) (uid, variant, score int, err error) {
	header, err := r.Read()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("read dataset header: %w", err)
	}

	uid, variant, score = -1, -1, -1
	for i, name := range header {
		switch name {
		case colUID:
			uid = i
		case colVariant:
			variant = i
		case colScore:
			score = i
		}
	}
	if uid < 0 || variant < 0 || score < 0 {
		return 0, 0, 0, fmt.Errorf("dataset header %v lacks required columns %s, %s, %s",
			header, colUID, colVariant, colScore)
	}
	return uid, variant, score, nil
}
