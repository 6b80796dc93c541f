package moderation_test

import (
	"testing"

	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

func TestStoreReplaceAllRebuildsSnapshot(t *testing.T) {
	store := moderation.NewStore(nil)
	store.ReplaceAll(moderation.KindUser, []moderation.Entity{
		user("1", moderation.StatusPending, "Alice", "a@example.com"),
		user("2", moderation.StatusApproved, "Bob", "b@example.com"),
	})
	if store.Len(moderation.KindUser) != 2 {
		t.Fatalf("len = %d", store.Len(moderation.KindUser))
	}

	store.ReplaceAll(moderation.KindUser, []moderation.Entity{
		user("9", moderation.StatusHold, "Carol", "c@example.com"),
	})
	if store.Len(moderation.KindUser) != 2-1 {
		t.Fatalf("replace did not drop previous snapshot, len = %d", store.Len(moderation.KindUser))
	}
	if _, ok := store.Get(moderation.KindUser, "1"); ok {
		t.Fatal("stale entity survived ReplaceAll")
	}
}

func TestStoreKindsAreIsolated(t *testing.T) {
	store := moderation.NewStore(nil)
	store.ReplaceAll(moderation.KindUser, []moderation.Entity{
		user("116", moderation.StatusPending, "Alice", "a@example.com"),
	})
	store.ReplaceAll(moderation.KindPortfolio, []moderation.Entity{
		portfolio("116", moderation.StatusApproved, "E-commerce Platform"),
	})

	// Same numeric id under two kinds must remain two distinct records.
	store.Remove(moderation.KindPortfolio, "116")
	if _, ok := store.Get(moderation.KindUser, "116"); !ok {
		t.Fatal("removing a portfolio deleted the user with the same id")
	}
}

func TestStorePatchStatusOnMissingIDIsSilent(t *testing.T) {
	store := moderation.NewStore(nil)
	store.ReplaceAll(moderation.KindUser, nil)
	// must not panic or create a phantom entry
	store.PatchStatus(moderation.KindUser, "42", moderation.StatusApproved)
	if store.Len(moderation.KindUser) != 0 {
		t.Fatal("patch on missing id created an entry")
	}
}

func TestStoreRemoveKeepsOrderOfRemainder(t *testing.T) {
	store := moderation.NewStore(nil)
	store.ReplaceAll(moderation.KindPortfolio, []moderation.Entity{
		portfolio("1", moderation.StatusPending, "first"),
		portfolio("2", moderation.StatusPending, "second"),
		portfolio("3", moderation.StatusPending, "third"),
	})
	store.Remove(moderation.KindPortfolio, "2")

	all := store.All(moderation.KindPortfolio)
	if len(all) != 2 || all[0].ID != "1" || all[1].ID != "3" {
		t.Fatalf("order after remove = %v", all)
	}

	// removing an absent id is a no-op
	store.Remove(moderation.KindPortfolio, "2")
	if store.Len(moderation.KindPortfolio) != 2 {
		t.Fatal("second remove changed the store")
	}
}
