package store

import (
	"context"
	"testing"

	"formbench/internal/model"

	"github.com/google/go-cmp/cmp"
)

func TestSQLiteKV_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := Store{Dir: t.TempDir()}.KV()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing; ok=%v err=%v", ok, err)
	}
	if err := kv.SetMany(ctx, map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	if err := kv.SetMany(ctx, map[string]string{"a": "3"}); err != nil {
		t.Fatalf("SetMany overwrite: %v", err)
	}
	if v, ok, err := kv.Get(ctx, "a"); err != nil || !ok || v != "3" {
		t.Fatalf("Get(a) = %q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "b"); ok {
		t.Fatalf("expected b deleted")
	}
}

func TestSQLiteKV_GetManyReadsTogether(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := Store{Dir: t.TempDir()}.KV()

	if err := kv.SetMany(ctx, map[string]string{KeyItems: "[]", KeyLayout: "row"}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	got, err := kv.GetMany(ctx, KeyItems, KeyBackgroundColor, KeyLayout)
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	want := map[string]string{KeyItems: "[]", KeyLayout: "row"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("GetMany mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteKV_GatewayRoundTripAcrossOpens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	items := model.Form{model.NewFormItem(model.KindHeading), model.NewFormItem(model.KindTextarea).WithRequired(true)}
	if err := NewGateway(s.KV(), nil).Save(ctx, model.PersistedState{Items: items, BackgroundColor: "#abcdef"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := NewGateway(s.KV(), nil).Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if len(got.Items) != 2 || got.Items[1].ID != items[1].ID || !got.Items[1].Required {
		t.Fatalf("unexpected items: %#v", got.Items)
	}
	if got.BackgroundColor != "#abcdef" {
		t.Fatalf("expected #abcdef; got %q", got.BackgroundColor)
	}
}
