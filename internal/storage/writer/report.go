package writer

import (
	"time"

	"github.com/leengari/relprofile/internal/domain/relation"
	"github.com/leengari/relprofile/internal/profiling/structures"
)

// Report is the rendered result of one relprofile invocation
type Report struct {
	RunID           string            `json:"run_id" yaml:"run_id"`
	GeneratedAt     time.Time         `json:"generated_at" yaml:"generated_at"`
	DurationSeconds float64           `json:"duration_seconds" yaml:"duration_seconds"`
	Relations       []RelationSummary `json:"relations" yaml:"relations"`
	UCCs            []UCCEntry        `json:"uccs" yaml:"uccs"`
	INDs            []INDEntry        `json:"inds" yaml:"inds"`
	Skipped         []string          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

type RelationSummary struct {
	Name       string `json:"name" yaml:"name"`
	Attributes int    `json:"attributes" yaml:"attributes"`
	Records    int    `json:"records" yaml:"records"`
}

type UCCEntry struct {
	Relation string   `json:"relation" yaml:"relation"`
	Columns  []string `json:"columns" yaml:"columns"`
}

type INDEntry struct {
	Dependent  string `json:"dependent" yaml:"dependent"`
	Referenced string `json:"referenced" yaml:"referenced"`
}

// NewReport summarizes relations and the dependencies found over them
func NewReport(runID string, relations []*relation.Relation, uccs []structures.UCC, inds []structures.IND, duration time.Duration) *Report {
	r := &Report{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC(),
		DurationSeconds: duration.Seconds(),
		Relations:       make([]RelationSummary, 0, len(relations)),
		UCCs:            make([]UCCEntry, 0, len(uccs)),
		INDs:            make([]INDEntry, 0, len(inds)),
	}

	for _, rel := range relations {
		r.Relations = append(r.Relations, RelationSummary{
			Name:       rel.Name,
			Attributes: rel.ColumnCount(),
			Records:    rel.RecordCount(),
		})
	}
	for _, u := range uccs {
		r.UCCs = append(r.UCCs, UCCEntry{Relation: u.Relation.Name, Columns: u.Names()})
	}
	for _, ind := range inds {
		r.INDs = append(r.INDs, INDEntry{Dependent: ind.DependentName(), Referenced: ind.ReferencedName()})
	}
	return r
}

// Duration returns the recorded wall time
func (r *Report) Duration() time.Duration {
	return time.Duration(r.DurationSeconds * float64(time.Second))
}
