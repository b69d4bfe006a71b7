package projects

// Record is one project phase row from the authoritative project table.
type Record struct {
	PhaseNumber string `json:"phase_number" yaml:"phase_number"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
}

// DirName returns the normalized directory name of the record.
func (r Record) DirName() string {
	return Normalize(r.PhaseNumber, r.ProjectName)
}
