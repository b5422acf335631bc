package schema

import (
	"io"
	"sort"
	"sync"
	"time"
)

// Reporter defines the interface for creating formatted validation reports.
type Reporter interface {
	Write(w io.Writer, report *ValidationReport) error
}

// CaseLog maps resolved type names to the cases validated against them.
// Cases whose type never resolved group under the empty name.
type CaseLog map[TypeName][]Case

// NewCaseLog creates a new CaseLog.
func NewCaseLog() CaseLog {
	return make(CaseLog)
}

// AddCase adds a case to the CaseLog under its type name.
func (l CaseLog) AddCase(c *Case) {
	l[c.TypeName] = append(l[c.TypeName], *c)
}

// TypeNames returns the log's type names, sorted.
func (l CaseLog) TypeNames() []TypeName {
	names := make([]TypeName, 0, len(l))
	for tn := range l {
		names = append(names, tn)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Total returns the number of cases across every type.
func (l CaseLog) Total() int {
	n := 0
	for _, cases := range l {
		n += len(cases)
	}
	return n
}

// ValidationReport represents the results of a validation run.
type ValidationReport struct {
	mu sync.Mutex

	StartTime time.Time
	EndTime   time.Time

	FailedCases CaseLog // cases exposing a problem in their payload
	PassedCases CaseLog // cases whose payload conformed to its type

	links map[string]bool // resource links seen across all populated payloads
}

// NewValidationReport creates a new ValidationReport.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{
		FailedCases: NewCaseLog(),
		PassedCases: NewCaseLog(),
		links:       make(map[string]bool),
	}
}

// AddFailedCase adds a failed case to the report.
func (r *ValidationReport) AddFailedCase(c *Case) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FailedCases.AddCase(c)
}

// AddPassedCase adds a passed case to the report.
func (r *ValidationReport) AddPassedCase(c *Case) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PassedCases.AddCase(c)
}

// AddLinks records resource links extracted from a populated payload.
func (r *ValidationReport) AddLinks(links []string) {
	if len(links) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range links {
		r.links[l] = true
	}
}

// Links returns every recorded resource link, deduplicated and sorted.
func (r *ValidationReport) Links() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.links))
	for l := range r.links {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Counts returns the number of passed and failed cases.
func (r *ValidationReport) Counts() (passed, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.PassedCases.Total(), r.FailedCases.Total()
}
