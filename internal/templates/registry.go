package templates

import (
	"statement-ingestion-service/internal/models"
	"statement-ingestion-service/pkg/errors"
)

// Registry holds an ordered, immutable set of statement templates. It is
// constructed once at startup and is safe to share across goroutines.
type Registry struct {
	templates []*Template
}

// NewRegistry builds a registry from the given templates, validating each
// one and rejecting duplicate ids. Order is preserved: detection ties go
// to the earlier template.
func NewRegistry(ts ...*Template) (*Registry, error) {
	seen := make(map[string]bool, len(ts))
	for _, t := range ts {
		if err := t.Validate(); err != nil {
			return nil, errors.TemplateError(errors.CodeInvalidTemplate, t.ID, err)
		}
		if seen[t.ID] {
			return nil, errors.TemplateError(errors.CodeDuplicateTemplate, t.ID, nil)
		}
		seen[t.ID] = true
	}

	return &Registry{templates: ts}, nil
}

// DefaultRegistry returns a registry holding only the built-in templates
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(Builtin()...)
	if err != nil {
		// Built-in templates are validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return reg
}

// Templates returns the registry contents in registration order
func (r *Registry) Templates() []*Template {
	return r.templates
}

// Get returns the template with the given id, or nil
func (r *Registry) Get(id string) *Template {
	for _, t := range r.templates {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Detection is the result of matching a header row against the registry
type Detection struct {
	Template *Template      `json:"template"`
	Mapping  models.Mapping `json:"mapping"`
	Matched  int            `json:"matched"`
	Total    int            `json:"total"`
}

// Detect finds the template whose aliases best match the given header row.
// Candidates that fail the minimum-columns gate are discarded; among the
// rest the strictly highest matched-field count wins, with ties going to
// the first template in registry order. Returns nil when nothing clears
// the gate, in which case callers fall back to InferMapping.
func (r *Registry) Detect(headers []string) *Detection {
	var best *Detection
	bestScore := -1

	for _, template := range r.templates {
		mapping, matched, total := BuildTemplateMapping(headers, template)
		if !mapping.HasMinimumColumns() {
			continue
		}

		if matched > bestScore {
			bestScore = matched
			best = &Detection{
				Template: template,
				Mapping:  mapping,
				Matched:  matched,
				Total:    total,
			}
		}
	}

	return best
}

// BuildTemplateMapping resolves a template's aliases against a header row.
// It returns the sparse mapping plus how many of the template's declared
// fields were found; fields with empty alias lists do not count toward the
// total.
func BuildTemplateMapping(headers []string, template *Template) (models.Mapping, int, int) {
	mapping := make(models.Mapping)
	matched := 0
	total := 0

	for field, aliases := range template.Aliases {
		if len(aliases) == 0 {
			continue
		}
		total++
		if header := findHeader(headers, aliases); header != "" {
			mapping[field] = header
			matched++
		}
	}

	return mapping, matched, total
}

// genericAliases back the keyword fallback used when no template matches
var genericAliases = map[models.Field][]string{
	models.FieldAmount:      {"amount", "amt", "transactionamount"},
	models.FieldBalance:     {"balance", "closingbalance", "runningbalance"},
	models.FieldCredit:      {"credit", "cr", "deposit"},
	models.FieldDate:        {"date", "transactiondate", "postingdate", "valuedate"},
	models.FieldDebit:       {"debit", "dr", "withdrawal"},
	models.FieldDescription: {"description", "narration", "details", "remark", "memo"},
	models.FieldType:        {"type", "transactiontype", "drcr", "debitcredit"},
}

// InferMapping maps a header row to semantic fields using generic keyword
// candidates. For each field the first header (in column order) whose
// normalized form equals a candidate wins; there is no scoring.
func InferMapping(headers []string) models.Mapping {
	mapping := make(models.Mapping)
	for field, candidates := range genericAliases {
		if header := findHeader(headers, candidates); header != "" {
			mapping[field] = header
		}
	}
	return mapping
}

// findHeader returns the first raw header whose normalized form appears in
// the candidate list. Duplicate raw headers that normalize to the same key
// are not guarded against; the first match in column order wins.
func findHeader(headers []string, candidates []string) string {
	for _, header := range headers {
		normalized := models.NormalizeHeader(header)
		for _, candidate := range candidates {
			if normalized == candidate {
				return header
			}
		}
	}
	return ""
}
