package store

import "time"

// Record contract implementations. Clone performs a deep copy of slices and
// maps so repository snapshots never alias caller-held records. SortValue
// answers the sortBy keys accepted by list queries; unknown keys fall back
// to createdAt so sorting stays total.

func cloneSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneTime(in *time.Time) *time.Time {
	if in == nil {
		return nil
	}
	t := *in
	return &t
}

func (u *User) Clone() *User {
	c := *u
	return &c
}

func (u *User) RecordID() string      { return u.ID }
func (u *User) SetRecordID(id string) { u.ID = id }

func (u *User) Touch(now time.Time, created bool) {
	if created {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

func (u *User) SortValue(field string) any {
	switch field {
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "role":
		return u.Role
	case "updatedAt":
		return u.UpdatedAt
	default:
		return u.CreatedAt
	}
}

func (m *Molecule) Clone() *Molecule {
	c := *m
	c.Properties = cloneMap(m.Properties)
	c.ProjectIDs = cloneSlice(m.ProjectIDs)
	return &c
}

func (m *Molecule) RecordID() string      { return m.ID }
func (m *Molecule) SetRecordID(id string) { m.ID = id }

func (m *Molecule) Touch(now time.Time, created bool) {
	if created {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func (m *Molecule) SortValue(field string) any {
	switch field {
	case "name":
		return m.Name
	case "smiles":
		return m.SMILES
	case "updatedAt":
		return m.UpdatedAt
	default:
		return m.CreatedAt
	}
}

func (p *Project) Clone() *Project {
	c := *p
	c.TeamIDs = cloneSlice(p.TeamIDs)
	return &c
}

func (p *Project) RecordID() string      { return p.ID }
func (p *Project) SetRecordID(id string) { p.ID = id }

func (p *Project) Touch(now time.Time, created bool) {
	if created {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *Project) SortValue(field string) any {
	switch field {
	case "name":
		return p.Name
	case "status":
		return string(p.Status)
	case "updatedAt":
		return p.UpdatedAt
	default:
		return p.CreatedAt
	}
}

func (t *ClinicalTrial) Clone() *ClinicalTrial {
	c := *t
	c.MoleculeIDs = cloneSlice(t.MoleculeIDs)
	c.StartDate = cloneTime(t.StartDate)
	c.EndDate = cloneTime(t.EndDate)
	return &c
}

func (t *ClinicalTrial) RecordID() string      { return t.ID }
func (t *ClinicalTrial) SetRecordID(id string) { t.ID = id }

func (t *ClinicalTrial) Touch(now time.Time, created bool) {
	if created {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

func (t *ClinicalTrial) SortValue(field string) any {
	switch field {
	case "title":
		return t.Title
	case "phase":
		return string(t.Phase)
	case "enrollment":
		return t.Enrollment
	case "updatedAt":
		return t.UpdatedAt
	default:
		return t.CreatedAt
	}
}

func (p *ResearchPaper) Clone() *ResearchPaper {
	c := *p
	c.Authors = cloneSlice(p.Authors)
	c.MoleculeIDs = cloneSlice(p.MoleculeIDs)
	c.TrialIDs = cloneSlice(p.TrialIDs)
	c.PublishedAt = cloneTime(p.PublishedAt)
	return &c
}

func (p *ResearchPaper) RecordID() string      { return p.ID }
func (p *ResearchPaper) SetRecordID(id string) { p.ID = id }

func (p *ResearchPaper) Touch(now time.Time, created bool) {
	if created {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *ResearchPaper) SortValue(field string) any {
	switch field {
	case "title":
		return p.Title
	case "journal":
		return p.Journal
	case "publishedAt":
		if p.PublishedAt == nil {
			return time.Time{}
		}
		return *p.PublishedAt
	case "updatedAt":
		return p.UpdatedAt
	default:
		return p.CreatedAt
	}
}

func (e *SafetyEvent) Clone() *SafetyEvent {
	c := *e
	return &c
}

func (e *SafetyEvent) RecordID() string      { return e.ID }
func (e *SafetyEvent) SetRecordID(id string) { e.ID = id }

func (e *SafetyEvent) Touch(now time.Time, created bool) {
	if created {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}

func (e *SafetyEvent) SortValue(field string) any {
	switch field {
	case "severity":
		return string(e.Severity)
	case "outcome":
		return string(e.Outcome)
	case "updatedAt":
		return e.UpdatedAt
	default:
		return e.CreatedAt
	}
}

func (p *MLPrediction) Clone() *MLPrediction {
	c := *p
	c.Properties = cloneMap(p.Properties)
	return &c
}

func (p *MLPrediction) RecordID() string      { return p.ID }
func (p *MLPrediction) SetRecordID(id string) { p.ID = id }

func (p *MLPrediction) Touch(now time.Time, created bool) {
	if created {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *MLPrediction) SortValue(field string) any {
	switch field {
	case "modelType":
		return p.ModelType
	case "confidence":
		return p.Confidence
	case "updatedAt":
		return p.UpdatedAt
	default:
		return p.CreatedAt
	}
}

func (i *ResearchInsight) Clone() *ResearchInsight {
	c := *i
	c.PaperIDs = cloneSlice(i.PaperIDs)
	return &c
}

func (i *ResearchInsight) RecordID() string      { return i.ID }
func (i *ResearchInsight) SetRecordID(id string) { i.ID = id }

func (i *ResearchInsight) Touch(now time.Time, created bool) {
	if created {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}

func (i *ResearchInsight) SortValue(field string) any {
	switch field {
	case "title":
		return i.Title
	case "confidence":
		return i.Confidence
	case "updatedAt":
		return i.UpdatedAt
	default:
		return i.CreatedAt
	}
}
