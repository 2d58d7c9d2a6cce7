package reconcile

import "inventory-vault/core/record"

// DefaultPreviewLimit bounds the number of sample entries shown per
// partition when no explicit limit is given.
const DefaultPreviewLimit = 10

// UpdateSample is one bounded preview entry for an update: the identifier
// value plus the fields that would change. Full records never leave the plan
// for display purposes.
type UpdateSample struct {
	Key  string `json:"key"`
	Diff Diff   `json:"diff"`
}

// Preview is the bounded, display-oriented view of a plan: counts, warnings
// and the first few inserts/updates.
type Preview struct {
	Collection    string          `json:"collection"`
	Identifier    string          `json:"identifier"`
	Summary       Summary         `json:"summary"`
	UpdateSamples []UpdateSample  `json:"update_samples"`
	InsertSamples []record.Record `json:"insert_samples"`
	Warnings      []Warning       `json:"warnings,omitempty"`
}

// Preview returns a bounded view of the plan: the summary plus at most limit
// update samples and limit insert samples. A non-positive limit falls back to
// DefaultPreviewLimit.
func (p *Plan) Preview(limit int) Preview {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}

	pv := Preview{
		Collection:    p.Collection,
		Identifier:    p.Identifier,
		Summary:       p.Summary,
		UpdateSamples: []UpdateSample{},
		InsertSamples: []record.Record{},
		Warnings:      p.Warnings,
	}

	for i, u := range p.Updates {
		if i >= limit {
			break
		}
		pv.UpdateSamples = append(pv.UpdateSamples, UpdateSample{
			Key:  record.Normalize(u.Backup[p.Identifier]),
			Diff: u.Diff,
		})
	}

	for i, rec := range p.Inserts {
		if i >= limit {
			break
		}
		pv.InsertSamples = append(pv.InsertSamples, rec)
	}

	return pv
}

// HasChanges reports whether applying the plan would write anything.
func (p *Plan) HasChanges() bool {
	return len(p.Inserts) > 0 || len(p.Updates) > 0
}
