package fam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dina-lab3D/FamAnalysis/config"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// FetchDataset downloads the dataset snapshot to its configured path,
// streaming it to disk still compressed. Safe to re-run; the file is
// replaced wholesale.
func FetchDataset(ctx context.Context, fs afero.Fs, cfg *config.Config) error {
	printIf(VerboseProgress, "downloading %s", cfg.Dataset.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Dataset.URL, nil)
	if err != nil {
		return fmt.Errorf("build dataset request: %w", err)
	}

	client := &http.Client{Timeout: 0} // multi-GB transfer, no deadline
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dataset: unexpected status %s", resp.Status)
	}

	if err := fs.MkdirAll(filepath.Dir(cfg.Dataset.Path), 0755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	out, err := fs.Create(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer out.Close()

	start := time.Now()
	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	printIf(VerboseProgress, "wrote %s to %s in %s",
		humanize.Bytes(uint64(n)), cfg.Dataset.Path, time.Since(start).Round(time.Second))
	return nil
}
