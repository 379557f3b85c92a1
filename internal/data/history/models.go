package history

import "time"

const SchemaVersion = 1

// Snapshot records the outcome of one full scan.
type Snapshot struct {
	SchemaVersion   int       `json:"schema_version"`
	RunID           string    `json:"run_id"`
	Timestamp       time.Time `json:"timestamp"`
	FileCount       int       `json:"file_count"`
	DefinitionCount int       `json:"definition_count"`
	OffenseCount    int       `json:"offense_count"`
	BodilessCount   int       `json:"bodiless_count"`
	NamespaceCount  int       `json:"namespace_count"`
	PrivateCount    int       `json:"private_count"`
	DocumentedCount int       `json:"documented_count"`
	NodocCount      int       `json:"nodoc_count"`
	DurationMS      int64     `json:"duration_ms"`
}

// TrendPoint pairs a snapshot with deltas against the previous one.
type TrendPoint struct {
	Timestamp        time.Time `json:"timestamp"`
	FileCount        int       `json:"file_count"`
	DefinitionCount  int       `json:"definition_count"`
	OffenseCount     int       `json:"offense_count"`
	DeltaFiles       int       `json:"delta_files"`
	DeltaDefinitions int       `json:"delta_definitions"`
	DeltaOffenses    int       `json:"delta_offenses"`
}

// Trend converts chronologically ordered snapshots into delta points.
// The first point carries zero deltas.
func Trend(snapshots []Snapshot) []TrendPoint {
	points := make([]TrendPoint, 0, len(snapshots))
	for i, s := range snapshots {
		p := TrendPoint{
			Timestamp:       s.Timestamp,
			FileCount:       s.FileCount,
			DefinitionCount: s.DefinitionCount,
			OffenseCount:    s.OffenseCount,
		}
		if i > 0 {
			prev := snapshots[i-1]
			p.DeltaFiles = s.FileCount - prev.FileCount
			p.DeltaDefinitions = s.DefinitionCount - prev.DefinitionCount
			p.DeltaOffenses = s.OffenseCount - prev.OffenseCount
		}
		points = append(points, p)
	}
	return points
}
