package launch

import "fmt"

// Dataset is an ordered, read-only sequence of launch records.
type Dataset struct {
	records []Record
}

// NewDataset validates records and copies them into a Dataset.
func NewDataset(records []Record) (Dataset, error) {
	copied := make([]Record, len(records))
	for idx, record := range records {
		if err := record.validate(); err != nil {
			return Dataset{}, fmt.Errorf("record %d: %w", idx, err)
		}
		copied[idx] = record
	}
	return Dataset{records: copied}, nil
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// At returns the record at idx.
func (d Dataset) At(idx int) Record {
	return d.records[idx]
}

// Records returns a copy of the records in dataset order.
func (d Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Filter returns the records for which keep reports true, in dataset order.
func (d Dataset) Filter(keep func(Record) bool) Dataset {
	out := make([]Record, 0, len(d.records))
	for _, record := range d.records {
		if keep(record) {
			out = append(out, record)
		}
	}
	return Dataset{records: out}
}

// ForSite restricts the dataset to one site. AllSites returns every record and
// an unknown site returns an empty dataset.
func (d Dataset) ForSite(site string) Dataset {
	if IsAllSites(site) {
		return d.Filter(func(Record) bool { return true })
	}
	return d.Filter(func(r Record) bool { return r.Site == site })
}

// InPayloadRange keeps records whose payload mass lies inside rng, bounds included.
func (d Dataset) InPayloadRange(rng PayloadRange) Dataset {
	return d.Filter(func(r Record) bool { return rng.Contains(r.PayloadMassKG) })
}

// Sites returns distinct site names in first-appearance order.
func (d Dataset) Sites() []string {
	seen := make(map[string]struct{})
	sites := make([]string, 0)
	for _, record := range d.records {
		if _, ok := seen[record.Site]; ok {
			continue
		}
		seen[record.Site] = struct{}{}
		sites = append(sites, record.Site)
	}
	return sites
}

// PayloadBounds returns the observed minimum and maximum payload mass. An empty
// dataset reports a zero range.
func (d Dataset) PayloadBounds() PayloadRange {
	if len(d.records) == 0 {
		return PayloadRange{}
	}
	bounds := PayloadRange{Low: d.records[0].PayloadMassKG, High: d.records[0].PayloadMassKG}
	for _, record := range d.records[1:] {
		bounds.Low = min(bounds.Low, record.PayloadMassKG)
		bounds.High = max(bounds.High, record.PayloadMassKG)
	}
	return bounds
}

// OutcomeCounts tallies launch outcomes.
type OutcomeCounts struct {
	Successes int
	Failures  int
}

// Total returns the number of launches counted.
func (c OutcomeCounts) Total() int {
	return c.Successes + c.Failures
}

// SuccessRate returns successes over total, or zero when nothing was counted.
func (c OutcomeCounts) SuccessRate() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Successes) / float64(total)
}

func (c *OutcomeCounts) add(outcome Outcome) {
	switch outcome {
	case Success:
		c.Successes++
	case Failure:
		c.Failures++
	}
}

// Outcomes counts successes and failures across the dataset. Categories with no
// records are zero.
func (d Dataset) Outcomes() OutcomeCounts {
	var counts OutcomeCounts
	for _, record := range d.records {
		counts.add(record.Class)
	}
	return counts
}

// SiteOutcome is the outcome tally for a single site.
type SiteOutcome struct {
	Site string
	OutcomeCounts
}

// SiteOutcomes groups the dataset by site in first-appearance order.
func (d Dataset) SiteOutcomes() []SiteOutcome {
	index := make(map[string]int)
	groups := make([]SiteOutcome, 0)
	for _, record := range d.records {
		idx, ok := index[record.Site]
		if !ok {
			idx = len(groups)
			index[record.Site] = idx
			groups = append(groups, SiteOutcome{Site: record.Site})
		}
		groups[idx].add(record.Class)
	}
	return groups
}
