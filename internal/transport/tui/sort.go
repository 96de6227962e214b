package tui

import (
	"strings"

	"movie-storefront/internal/domain"
)

// sortControls is the number of controls in the sort editor.
const sortControls = 4

var (
	primaryFields   = []domain.SortField{domain.SortFieldRating, domain.SortFieldTitle}
	secondaryFields = []domain.SortField{domain.SortFieldTitle, domain.SortFieldRating, domain.SortFieldNone}
	sortOrders      = []domain.SortOrder{domain.SortOrderAsc, domain.SortOrderDesc}
)

// sortEditor holds the four sort controls until they are applied.
type sortEditor struct {
	sel   domain.SortSelection
	focus int
}

func newSortEditor(state domain.QueryState) sortEditor {
	sort2, order2 := state.SecondarySort()
	return sortEditor{sel: domain.SortSelection{
		Sort1:  state.Sort1,
		Order1: state.Order1,
		Sort2:  sort2,
		Order2: order2,
	}}
}

// cycle advances the focused control to its next value.
func (e *sortEditor) cycle() {
	switch e.focus {
	case 0:
		e.sel.Sort1 = nextOf(primaryFields, e.sel.Sort1)
	case 1:
		e.sel.Order1 = nextOf(sortOrders, e.sel.Order1)
	case 2:
		e.sel.Sort2 = nextOf(secondaryFields, e.sel.Sort2)
	case 3:
		e.sel.Order2 = nextOf(sortOrders, e.sel.Order2)
	}
}

func nextOf[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func (e sortEditor) view(focused bool) string {
	values := []string{
		string(e.sel.Sort1),
		string(e.sel.Order1),
		string(e.sel.Sort2),
		string(e.sel.Order2),
	}
	for i, v := range values {
		if focused && i == e.focus {
			values[i] = selectedLinkStyle.Render(v)
		}
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Sort: "))
	b.WriteString(values[0] + " " + values[1])
	b.WriteString(", then ")
	b.WriteString(values[2] + " " + values[3])
	return b.String()
}
