package memstore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/store"
)

func TestMemstoreSources(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	first, err := st.UpsertSource(ctx, store.Source{Name: "cities", TagType: "NE", TagValue: "LOCATION"})
	if err != nil {
		t.Fatalf("UpsertSource: %v", err)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	updated, err := st.UpsertSource(ctx, store.Source{Name: "cities", TagType: "NE", TagValue: "CITY", CaseSensitive: true})
	if err != nil {
		t.Fatalf("UpsertSource: %v", err)
	}
	if updated.ID != first.ID {
		t.Errorf("ID changed on update: %s -> %s", first.ID, updated.ID)
	}

	got, found, err := st.GetSource(ctx, "cities")
	if err != nil || !found {
		t.Fatalf("GetSource: found=%v err=%v", found, err)
	}
	if got.TagValue != "CITY" || !got.CaseSensitive {
		t.Errorf("Source not updated: %+v", got)
	}

	if _, found, _ := st.GetSource(ctx, "missing"); found {
		t.Error("missing source should not be found")
	}

	if _, err := st.UpsertSource(ctx, store.Source{Name: "people", TagType: "NE", TagValue: "PERSON"}); err != nil {
		t.Fatal(err)
	}
	sources, err := st.Sources(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 || sources[0].Name != "cities" || sources[1].Name != "people" {
		t.Errorf("Unexpected source order %+v", sources)
	}

	if _, err := st.UpsertSource(ctx, store.Source{Name: "broken"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMemstoreEntities(t *testing.T) {
	ctx := context.Background()
	st := New()

	if _, err := st.AddEntities(ctx, "cities", []string{"Paris"}); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := st.UpsertSource(ctx, store.Source{Name: "cities", TagType: "NE", TagValue: "LOCATION"}); err != nil {
		t.Fatal(err)
	}

	n, err := st.AddEntities(ctx, "cities", []string{"New York", "Paris", "New York"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Expected 2 added, got %d", n)
	}
	n, _ = st.AddEntities(ctx, "cities", []string{"Paris", "Berlin"})
	if n != 1 {
		t.Errorf("Expected 1 added, got %d", n)
	}

	entities, err := st.Entities(ctx, "cities")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(entities, []string{"New York", "Paris", "Berlin"}) {
		t.Errorf("Unexpected entities %v", entities)
	}

	if err := st.DeleteSource(ctx, "cities"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Entities(ctx, "cities"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.DeleteSource(ctx, "cities"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
