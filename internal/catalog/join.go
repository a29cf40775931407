package catalog

import (
	"strings"

	"github.com/rs/zerolog"

	"catmerge/internal/tabular"
)

// DefaultJoinKey is the expected identifier column in the external CSV.
const DefaultJoinKey = "product_sku"

// JoinStats summarizes a join for the run report.
type JoinStats struct {
	Key           string
	KeyFound      bool
	ExternalRows  int
	MatchedRows   int
	UnmatchedRows int
	OutputRows    int
}

// ResolveJoinKey picks the join key column from the external table's
// headers: an exact product_sku match first, then the first column
// whose name contains "sku" case-insensitively. When neither exists it
// returns DefaultJoinKey with found=false; joining on an absent column
// matches nothing, which is the documented degraded behavior.
func ResolveJoinKey(columns []string) (key string, found bool) {
	for _, c := range columns {
		if c == DefaultJoinKey {
			return c, true
		}
	}
	for _, c := range columns {
		if strings.Contains(strings.ToLower(c), "sku") {
			return c, true
		}
	}
	return DefaultJoinKey, false
}

// Join left-joins the external table against the product table,
// equating the resolved external key column with the product sku as
// text. Every external row appears in the output; unmatched rows carry
// empty product columns. Should the product table ever hold duplicate
// skus, each external row multiplies per match, as in a relational
// left join.
//
// Product columns keep their names in the output unless they collide
// with an external header, in which case they get a catalog_ prefix.
func Join(log zerolog.Logger, external, products *tabular.Table) (*tabular.Table, JoinStats) {
	key, found := ResolveJoinKey(external.Columns)
	if !found {
		log.Warn().
			Str("column", DefaultJoinKey).
			Strs("available", external.Columns).
			Msg("no sku-like column in external CSV, join will not match")
	} else if key != DefaultJoinKey {
		log.Info().Str("column", key).Msg("using fallback column for join")
	}

	index := make(map[string][]tabular.Row, len(products.Rows))
	for _, r := range products.Rows {
		index[r["sku"]] = append(index[r["sku"]], r)
	}

	outNames := make(map[string]string, len(products.Columns))
	columns := append([]string(nil), external.Columns...)
	for _, c := range products.Columns {
		name := c
		if external.HasColumn(c) {
			name = "catalog_" + c
		}
		outNames[c] = name
		columns = append(columns, name)
	}

	joined := tabular.New(columns...)
	stats := JoinStats{Key: key, KeyFound: found, ExternalRows: len(external.Rows)}
	canMatch := external.HasColumn(key)
	for _, ext := range external.Rows {
		var matches []tabular.Row
		if canMatch {
			matches = index[ext[key]]
		}
		if len(matches) == 0 {
			stats.UnmatchedRows++
			joined.Append(joinRow(ext, nil, external.Columns, products.Columns, outNames))
			continue
		}
		stats.MatchedRows++
		for _, m := range matches {
			joined.Append(joinRow(ext, m, external.Columns, products.Columns, outNames))
		}
	}
	stats.OutputRows = len(joined.Rows)
	return joined, stats
}

func joinRow(ext, match tabular.Row, extCols, prodCols []string, outNames map[string]string) tabular.Row {
	row := make(tabular.Row, len(extCols)+len(prodCols))
	for _, c := range extCols {
		row[c] = ext[c]
	}
	for _, c := range prodCols {
		if match != nil {
			row[outNames[c]] = match[c]
		} else {
			row[outNames[c]] = ""
		}
	}
	return row
}
