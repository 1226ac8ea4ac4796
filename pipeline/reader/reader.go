package reader

import (
	"fmt"

	"github.com/lakeload/lakeload/table"
	"github.com/lakeload/lakeload/utils"
)

var (
	logger = utils.LakeLogger("reader")
)

// Read produces a table from a gzip-compressed, header-bearing delimited
// file. Strategies are tried fastest-first; the first one that completes
// without error wins. Only when every strategy has failed does Read fail,
// carrying the most recent failure's reason.
func (r Reader) Read(path string) (table.Table, error) {
	return r.readWith(r.strategies(), path)
}

func (r Reader) strategies() []strategy {
	return []strategy{
		{"streaming_scan", r.streamingScan},
		{"decompress_batched", r.decompressBatched},
		{"direct_batched", r.directBatched},
		{"full_buffer", r.fullBuffer},
	}
}

func (r Reader) readWith(strategies []strategy, path string) (table.Table, error) {
	var lastErr error
	for _, s := range strategies {
		t, err := s.run(path)
		if err != nil {
			lastErr = err
			logger.Warn().
				Str("strategy", s.name).
				Str("err", err.Error()).
				Msg("read strategy failed, falling back")
			continue
		}

		logger.Info().
			Str("strategy", s.name).
			Int("rows", t.NumRows()).
			Int("columns", t.NumColumns()).
			Msg("read completed")
		return t, nil
	}

	return table.Table{}, fmt.Errorf("%w: last error: %v", ErrExhausted, lastErr)
}
