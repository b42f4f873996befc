// Package uniprot resolves protein reference names to UniProt accessions
// through the UniProtKB REST API.
package uniprot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dina-lab3D/FamAnalysis/internal/store"
)

const (
	queryURL = "https://rest.uniprot.org/uniprotkb/search"
	contact  = "FamAnalysis (+https://github.com/dina-lab3D/FamAnalysis)"

	timeout  = 10 * time.Second
	waitTime = time.Second
	retries  = 10
)

// geneAliases maps gene symbols whose UniProt entries were merged or
// renamed, so lookups by the symbol found in cohort data still resolve.
var geneAliases = map[string]string{
	"LOC100287896": "LIPT2",
	"FPGT-TNNI3K":  "TNNI3K",
	"ATPSJ2-PTCD1": "PTCD1",
	"CCL4L1":       "CCL4L2",
	"PTGDR2":       "CCDC86",
	"4-SEPT":       "SEPT4",
}

// Client queries UniProtKB for a gene's primary accession and its
// reviewed/non-reviewed alias accessions.
type Client struct {
	HTTP *http.Client

	// BaseURL overrides the public API endpoint, used by tests
	BaseURL string
}

// New returns a Client with the default request timeout.
func New() *Client {
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

// Resolve fetches the protein record metadata for a gene reference name.
// Reviewed accessions are fetched first; the first one is the primary
// accession, the rest become reviewed aliases, and every non-reviewed
// accession becomes a fallback alias.
func (c *Client) Resolve(ctx context.Context, name string) (*store.Protein, error) {
	gene := name
	if alias, ok := geneAliases[gene]; ok {
		gene = alias
	}

	reviewed, err := c.accessions(ctx, gene, true)
	if err != nil {
		return nil, fmt.Errorf("fetch reviewed accessions for %s: %w", name, err)
	}
	unreviewed, err := c.accessions(ctx, gene, false)
	if err != nil {
		return nil, fmt.Errorf("fetch non-reviewed accessions for %s: %w", name, err)
	}
	if len(reviewed) == 0 && len(unreviewed) == 0 {
		return nil, fmt.Errorf("no UniProt accessions found for %s", name)
	}

	p := &store.Protein{Name: name, Unreviewed: unreviewed}
	if len(reviewed) > 0 {
		p.UID = reviewed[0]
		p.Reviewed = reviewed[1:]
	} else {
		p.UID = unreviewed[0]
		p.Unreviewed = unreviewed[1:]
	}
	return p, nil
}

// accessions runs one TSV id query against UniProtKB, human entries only.
func (c *Client) accessions(ctx context.Context, gene string, reviewed bool) ([]string, error) {
	base := c.BaseURL
	if base == "" {
		base = queryURL
	}

	q := url.Values{}
	q.Set("fields", "id")
	q.Set("format", "tsv")
	q.Set("query", fmt.Sprintf("gene_exact:%s AND organism_id:9606 AND reviewed:%t", gene, reviewed))

	body, err := c.get(ctx, base+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return parseTSVIDs(body), nil
}

// get issues one GET with bounded retries on throttling and server errors.
func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(waitTime):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", contact)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		b, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK && readErr == nil:
			return string(b), nil
		case resp.StatusCode == http.StatusOK:
			lastErr = fmt.Errorf("read response body: %w", readErr)
		case retryableStatus(resp.StatusCode):
			lastErr = fmt.Errorf("status %s", resp.Status)
		default:
			return "", fmt.Errorf("status %s", resp.Status)
		}
	}
	return "", fmt.Errorf("gave up after %d attempts: %w", retries, lastErr)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// parseTSVIDs extracts accessions from a one-column TSV response,
// dropping the "Entry" header and blank lines.
func parseTSVIDs(body string) []string {
	var ids []string
	for _, line := range strings.Split(body, "\n") {
		id := strings.TrimSpace(strings.Split(line, "\t")[0])
		if id == "" || id == "Entry" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
