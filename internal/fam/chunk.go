package fam

// DatasetRow is one projected row of the external substitutions dataset:
// only the three columns matching needs.
type DatasetRow struct {
	UID     string
	Variant string
	Score   float64
}

// Chunk is a bounded, memory-resident slice of the dataset with a lookup
// index from accession to its rows. Chunks never outlive one scan
// iteration.
type Chunk struct {
	// absolute offset of the chunk's first row, progress reporting only
	Start int64

	rows  []DatasetRow
	index map[string][]int
}

func newChunk(start int64, capacity int64) *Chunk {
	return &Chunk{
		Start: start,
		rows:  make([]DatasetRow, 0, capacity),
		index: make(map[string][]int),
	}
}

func (c *Chunk) add(r DatasetRow) {
	c.index[r.UID] = append(c.index[r.UID], len(c.rows))
	c.rows = append(c.rows, r)
}

// Len is the number of rows held.
func (c *Chunk) Len() int {
	return len(c.rows)
}

// Contains reports whether any row carries the accession.
func (c *Chunk) Contains(uid string) bool {
	_, ok := c.index[uid]
	return ok
}

// Find looks up the score for (accession, variant descriptor). The second
// return is false when the pair has no row in this chunk.
func (c *Chunk) Find(uid, variant string) (float64, bool) {
	for _, i := range c.index[uid] {
		if c.rows[i].Variant == variant {
			return c.rows[i].Score, true
		}
	}
	return 0, false
}
