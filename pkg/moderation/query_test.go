package moderation_test

import (
	"context"
	"testing"

	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

func TestSearchIsCaseInsensitiveAndFieldLocal(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)

	cases := []struct {
		term string
		want int
	}{
		{"fatima", 1},
		{"SHAFIEE", 1},
		// Substring spanning the first/last name boundary: fields are matched
		// individually, never concatenated, so this must not match.
		{"ima sha", 0},
		{"example.com", 2},
		{"", 2},
		{"   ", 2},
		{"no-such-user", 0},
	}
	for _, tc := range cases {
		got := q.Search(moderation.KindUser, tc.term)
		if len(got) != tc.want {
			t.Errorf("search(%q) returned %d users, want %d", tc.term, len(got), tc.want)
		}
	}
}

func TestSearchPortfoliosMatchesTitleAndID(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)

	if got := q.Search(moderation.KindPortfolio, "e-commerce"); len(got) != 1 || got[0].ID != "116" {
		t.Fatalf("title search = %v", got)
	}
	if got := q.Search(moderation.KindPortfolio, "115"); len(got) != 1 || got[0].ID != "115" {
		t.Fatalf("id search = %v", got)
	}
}

func TestSearchIsAPureFilter(t *testing.T) {
	src := defaultSource()
	q := newLoadedQueue(t, src)

	first := q.Search(moderation.KindUser, "fatima")
	second := q.Search(moderation.KindUser, "fatima")
	if len(first) != len(second) {
		t.Fatalf("repeated search diverged: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Status != second[i].Status {
			t.Fatalf("repeated search diverged at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	if got := q.Store().Len(moderation.KindUser); got != 2 {
		t.Fatalf("search mutated the store: %d entries left", got)
	}
}

func TestViewPreservesInsertionOrder(t *testing.T) {
	store := moderation.NewStore(nil)
	entities := []moderation.Entity{
		user("3", moderation.StatusPending, "Charlie", "c@example.com"),
		user("1", moderation.StatusPending, "Alice", "a@example.com"),
		user("2", moderation.StatusPending, "Bob", "b@example.com"),
	}
	store.ReplaceAll(moderation.KindUser, entities)

	view := moderation.View(store, moderation.KindUser, moderation.FilterAll, "")
	if len(view) != 3 {
		t.Fatalf("view size = %d", len(view))
	}
	for i, want := range []string{"3", "1", "2"} {
		if view[i].ID != want {
			t.Fatalf("view[%d] = %s, want %s (insertion order must hold)", i, view[i].ID, want)
		}
	}
}

func TestViewComposesStatusFilterAndSearch(t *testing.T) {
	store := moderation.NewStore(nil)
	store.ReplaceAll(moderation.KindUser, []moderation.Entity{
		user("1", moderation.StatusPending, "Fatima Shafiee", "fatima.s@example.com"),
		user("2", moderation.StatusApproved, "Fatima Khan", "f.khan@example.com"),
		user("3", moderation.StatusPending, "John Doe", "john.d@example.com"),
	})

	got := moderation.View(store, moderation.KindUser, moderation.StatusPending, "fatima")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("view = %v, want only pending Fatima (id 1)", got)
	}
}

func TestLoadWithServerSideFilterTreatsStoreAsFiltered(t *testing.T) {
	src := defaultSource()
	q := moderation.NewQueue(src, nil)

	view, err := q.Load(context.Background(), moderation.KindUser, 1, 100, moderation.StatusApproved)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(view) != 1 || view[0].ID != "137" {
		t.Fatalf("filtered load = %v, want only approved user 137", view)
	}
	if got := q.Store().Len(moderation.KindUser); got != 1 {
		t.Fatalf("store holds %d users, want the server-filtered 1", got)
	}
}
