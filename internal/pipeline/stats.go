package pipeline

// RunStats tracks aggregate counters and byte totals across one conversion
// run.
type RunStats struct {
	Splits        int // Splits that held at least one example.
	Examples      int // Examples embedded across all splits.
	Shards        int // Shard files written (or previewed in dry-run).
	SkippedShards int // Shard files kept because of --skip-existing.
	SourceBytes   int64
	WrittenBytes  int64
}
