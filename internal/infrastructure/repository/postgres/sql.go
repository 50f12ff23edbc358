package postgres

import (
	"sort"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
)

// insertBatchSize keeps the widest insert well under the 65535 bind parameter limit.
const insertBatchSize = 500

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	v := value
	return &v
}

func encodeJSONMap(value map[string]any) string {
	if len(value) == 0 {
		return "{}"
	}
	encoded, err := sonic.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

// startYears lists the distinct seasons present in a run, ascending.
func startYears(tables ledger.Tables) []any {
	seen := make(map[int]struct{})
	for _, m := range tables.Matches {
		seen[m.StartYear] = struct{}{}
	}
	for _, s := range tables.MatchStats {
		seen[s.StartYear] = struct{}{}
	}
	for _, s := range tables.PlayerSummaries {
		seen[s.StartYear] = struct{}{}
	}
	for _, s := range tables.TeamSummaries {
		seen[s.StartYear] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]any, 0, len(years))
	for _, y := range years {
		out = append(out, y)
	}
	return out
}

func batches(models []any, size int) [][]any {
	if size <= 0 {
		size = insertBatchSize
	}
	out := make([][]any, 0, (len(models)+size-1)/size)
	for start := 0; start < len(models); start += size {
		end := min(start+size, len(models))
		out = append(out, models[start:end])
	}
	return out
}
