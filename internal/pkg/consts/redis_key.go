package consts

const (
	// SnapshotSeriesKey caches the full snapshot series of one year; the
	// year is appended to the key.
	SnapshotSeriesKey = "awareness:snapshots:"
)
