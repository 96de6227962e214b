package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitGenres(t *testing.T) {
	got := SplitGenres(" Action, Comedy ,,Drama,  ")
	want := []string{"Action", "Comedy", "Drama"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitGenres mismatch (-want +got):\n%s", diff)
	}
	if SplitGenres("") != nil {
		t.Error("expected nil for empty input")
	}
}

func TestParseStars(t *testing.T) {
	got := ParseStars("nm1:Harrison Ford, nm2 : Mark: Hamill ,Carrie Fisher,")
	want := []StarRef{
		{ID: "nm1", Name: "Harrison Ford"},
		{ID: "nm2", Name: "Mark: Hamill"},
		{Name: "Carrie Fisher"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseStars mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGenreRefs(t *testing.T) {
	got := ParseGenreRefs("1:Action,Drama, 3: ,4:Sci:Fi")
	want := []GenreRef{
		{ID: "1", Name: "Action"},
		{Name: "Drama"},
		{ID: "4", Name: "Sci:Fi"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseGenreRefs mismatch (-want +got):\n%s", diff)
	}
}

func TestCartTotals(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{MovieID: "a", Quantity: 2, Price: 9.5},
		{MovieID: "b", Quantity: 1, Price: 3.25},
	}}

	if got := cart.Total(); got != 22.25 {
		t.Errorf("Total() = %v, want 22.25", got)
	}
	if cart.Quantity("a") != 2 || cart.Quantity("zzz") != 0 {
		t.Error("unexpected Quantity result")
	}
}

func TestAddedItemName(t *testing.T) {
	if got := (AddedItem{ItemID: "tt1", ItemTitle: "Heat"}).Name(); got != "Heat" {
		t.Errorf("Name() = %q", got)
	}
	if got := (AddedItem{ItemID: "tt1"}).Name(); got != "Movie ID tt1" {
		t.Errorf("Name() = %q", got)
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{"movies?page=2", Location{Page: PageMovies, RawQuery: "page=2"}},
		{"/movies/movies.html?genre=Drama", Location{Page: PageMovies, RawQuery: "genre=Drama"}},
		{"singlemovie.html?id=tt1", Location{Page: PageMovie, RawQuery: "id=tt1"}},
		{"star?id=nm1", Location{Page: PageStar, RawQuery: "id=nm1"}},
		{"_dashboard.html", Location{Page: PageDashboard}},
		{"somewhere-else", Location{Page: PageMovies}},
		{"", Location{Page: PageMovies}},
	}

	for _, tt := range tests {
		if got := ParseLocation(tt.raw); got != tt.want {
			t.Errorf("ParseLocation(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestLocationString(t *testing.T) {
	if got := MovieLocation("tt 1").String(); got != "movie?id=tt+1" {
		t.Errorf("String() = %q", got)
	}
	if got := (Location{Page: PageCart}).String(); got != "cart" {
		t.Errorf("String() = %q", got)
	}
}
