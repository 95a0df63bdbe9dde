package domain

// BoardFilter selects, sorts and pages the board list query.
// Zero values mean "no constraint"; PageIdx nil means "no paging".
type BoardFilter struct {
	Txt       string
	MinSpeed  float64
	SortField string
	SortDir   int
	PageIdx   *int
}

// BoardDetailsFilter is the in-memory pass over a single board's
// group/task tree. Filters apply in declaration order, cumulatively.
// Empty selection slices are vacuous and filter nothing.
type BoardDetailsFilter struct {
	Txt           string
	NoMembers     bool
	NoDueDate     bool
	NoLabels      bool
	SelectMembers []string // member ids
	SelectLabels  []string // label colors
}

// IsZero reports whether the filter would leave the board untouched.
func (f BoardDetailsFilter) IsZero() bool {
	return f.Txt == "" && !f.NoMembers && !f.NoDueDate && !f.NoLabels &&
		len(f.SelectMembers) == 0 && len(f.SelectLabels) == 0
}
