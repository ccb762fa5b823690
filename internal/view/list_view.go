package view

import "github.com/talentdesk/candidate-tracker/internal/domain"

// ListView holds the table state for one viewer.
type ListView struct {
	state State
}

// NewListView starts with no search, no filters and insertion order.
func NewListView() *ListView {
	return &ListView{state: State{Area: FilterAll, Status: FilterAll, SortDir: SortAsc}}
}

// NewListViewFrom restores a view from a previously captured state.
func NewListViewFrom(s State) *ListView {
	return &ListView{state: s}
}

// State returns the current selection.
func (v *ListView) State() State {
	return v.state
}

func (v *ListView) SetSearch(q string) {
	v.state.Search = q
}

func (v *ListView) SetArea(area string) {
	v.state.Area = area
}

func (v *ListView) SetStatus(status string) {
	v.state.Status = status
}

// ToggleSort applies the column header click semantics.
func (v *ListView) ToggleSort(field SortField) {
	v.state = ToggleSort(v.state, field)
}

// Project recomputes the projection of records for the current state.
func (v *ListView) Project(records []domain.Candidate) []domain.Candidate {
	return Project(records, v.state)
}
