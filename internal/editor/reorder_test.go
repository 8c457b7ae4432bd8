package editor

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"formbench/internal/model"

	"github.com/google/go-cmp/cmp"
)

func labeled(labels ...string) model.Form {
	out := make(model.Form, 0, len(labels))
	for _, l := range labels {
		out = append(out, model.FormItem{ID: "id-" + l, Kind: model.KindHeading, Text: l})
	}
	return out
}

func texts(f model.Form) []string {
	out := make([]string, 0, len(f))
	for _, it := range f {
		out = append(out, it.Text)
	}
	return out
}

func kinds(f model.Form) []string {
	out := make([]string, 0, len(f))
	for _, it := range f {
		out = append(out, string(it.Kind))
	}
	return out
}

func formOfKinds(ks ...model.Kind) model.Form {
	out := make(model.Form, 0, len(ks))
	for _, k := range ks {
		out = append(out, model.NewFormItem(k))
	}
	return out
}

func TestComputeDrop_PaletteInsertAtSlot(t *testing.T) {
	t.Parallel()

	list := formOfKinds(model.KindHeading, model.KindInput)
	s := PaletteSession(model.KindButton)

	got, err := ComputeDrop(list, &s, 1)
	if err != nil {
		t.Fatalf("ComputeDrop: %v", err)
	}
	if diff := cmp.Diff([]string{"heading", "button", "input"}, kinds(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got[1].Text != "button" || got[1].ID == "" {
		t.Fatalf("expected fresh button item; got %#v", got[1])
	}
	// Input untouched.
	if diff := cmp.Diff([]string{"heading", "input"}, kinds(list)); diff != "" {
		t.Fatalf("input list mutated (-want +got):\n%s", diff)
	}
}

func TestComputeDrop_PaletteGrowsByOneAtEveryTarget(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B", "C", "D", "E")
	for target := 0; target <= len(list); target++ {
		s := PaletteSession(model.KindTextarea)
		got, err := ComputeDrop(list, &s, target)
		if err != nil {
			t.Fatalf("target=%d: %v", target, err)
		}
		if len(got) != len(list)+1 {
			t.Fatalf("target=%d: expected len %d; got %d", target, len(list)+1, len(got))
		}
		if got[target].Kind != model.KindTextarea {
			t.Fatalf("target=%d: expected textarea at target; got %q", target, got[target].Kind)
		}
	}
}

func TestComputeDrop_PaletteSameKindRepeatedlyAllowed(t *testing.T) {
	t.Parallel()

	s := PaletteSession(model.KindInput)
	list := model.Form{}
	for i := 0; i < 3; i++ {
		next, err := ComputeDrop(list, &s, len(list))
		if err != nil {
			t.Fatalf("drop %d: %v", i, err)
		}
		list = next
	}
	if diff := cmp.Diff([]string{"input", "input", "input"}, kinds(list)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if list[0].ID == list[1].ID || list[1].ID == list[2].ID {
		t.Fatalf("expected distinct ids; got %q %q %q", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestComputeDrop_PaletteTargetClamps(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B")
	s := PaletteSession(model.KindButton)

	got, err := ComputeDrop(list, &s, 99)
	if err != nil {
		t.Fatalf("ComputeDrop: %v", err)
	}
	if got[2].Kind != model.KindButton {
		t.Fatalf("expected append; got %v", kinds(got))
	}

	got, err = ComputeDrop(list, &s, -3)
	if err != nil {
		t.Fatalf("ComputeDrop: %v", err)
	}
	if got[0].Kind != model.KindButton {
		t.Fatalf("expected prepend; got %v", kinds(got))
	}
}

func TestComputeDrop_CanvasMoveFirstToLast(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B", "C")
	s, err := CanvasSession(list, 0)
	if err != nil {
		t.Fatalf("CanvasSession: %v", err)
	}
	got, err := ComputeDrop(list, &s, 2)
	if err != nil {
		t.Fatalf("ComputeDrop: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "C", "A"}, texts(got)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDrop_CanvasAllOriginTargetPairs(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B", "C", "D", "E")
	want := texts(list)
	sort.Strings(want)

	for from := 0; from < len(list); from++ {
		for to := 0; to < len(list); to++ {
			s, err := CanvasSession(list, from)
			if err != nil {
				t.Fatalf("CanvasSession(%d): %v", from, err)
			}
			got, err := ComputeDrop(list, &s, to)
			if err != nil {
				t.Fatalf("from=%d to=%d: %v", from, to, err)
			}
			if len(got) != len(list) {
				t.Fatalf("from=%d to=%d: length changed to %d", from, to, len(got))
			}
			gotSorted := texts(got)
			sort.Strings(gotSorted)
			if diff := cmp.Diff(want, gotSorted); diff != "" {
				t.Fatalf("from=%d to=%d: multiset changed (-want +got):\n%s", from, to, diff)
			}
			if got[to].ID != list[from].ID {
				t.Fatalf("from=%d to=%d: expected %s at %d; got %s (%s)", from, to, list[from].Text, to, got[to].Text, strings.Join(texts(got), ","))
			}
			if from == to {
				if diff := cmp.Diff(list, got); diff != "" {
					t.Fatalf("from=to=%d: expected identity (-want +got):\n%s", from, diff)
				}
			}
			// Everything except the moved element keeps its relative order.
			var restWant, restGot []string
			for _, it := range list {
				if it.ID != list[from].ID {
					restWant = append(restWant, it.Text)
				}
			}
			for _, it := range got {
				if it.ID != list[from].ID {
					restGot = append(restGot, it.Text)
				}
			}
			if diff := cmp.Diff(restWant, restGot); diff != "" {
				t.Fatalf("from=%d to=%d: relative order broken (-want +got):\n%s", from, to, diff)
			}
		}
	}
}

func TestComputeDrop_CanvasTargetPastEndMovesToLast(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B", "C")
	s, _ := CanvasSession(list, 1)
	got, err := ComputeDrop(list, &s, len(list))
	if err != nil {
		t.Fatalf("ComputeDrop: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "C", "B"}, texts(got)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDrop_NoSessionIsNoOp(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B")
	got, err := ComputeDrop(list, nil, 0)
	if !errors.Is(err, ErrNoActiveDragSession) {
		t.Fatalf("expected ErrNoActiveDragSession; got %v", err)
	}
	if diff := cmp.Diff(list, got); diff != "" {
		t.Fatalf("expected unchanged (-want +got):\n%s", diff)
	}
}

func TestComputeDrop_StaleCanvasSessionIsNoOp(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B", "C")
	s, _ := CanvasSession(list, 2)

	// The list shrank after the drag started.
	shrunk, _ := DeleteAt(list, 0)
	got, err := ComputeDrop(shrunk, &s, 0)
	if !errors.Is(err, ErrStaleDragSession) {
		t.Fatalf("expected ErrStaleDragSession; got %v", err)
	}
	if diff := cmp.Diff(texts(shrunk), texts(got)); diff != "" {
		t.Fatalf("expected unchanged (-want +got):\n%s", diff)
	}

	// Same length, different item at the origin slot.
	s2, _ := CanvasSession(list, 0)
	swapped := labeled("X", "B", "C")
	if _, err := ComputeDrop(swapped, &s2, 2); !errors.Is(err, ErrStaleDragSession) {
		t.Fatalf("expected ErrStaleDragSession for replaced item; got %v", err)
	}
}

func TestDrop_ReportsLandingIndex(t *testing.T) {
	t.Parallel()

	list := labeled("A", "B", "C", "D")
	s, _ := CanvasSession(list, 3)
	res, err := Drop(list, &s, 1)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if !res.Changed || res.Index != 1 {
		t.Fatalf("expected changed at 1; got %#v", res)
	}
	if diff := cmp.Diff([]string{"A", "D", "B", "C"}, texts(res.Items)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
