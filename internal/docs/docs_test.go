package docs

import (
	"strings"
	"testing"
)

func TestTopicsListsEmbeddedGuides(t *testing.T) {
	topics := Topics()
	want := []string{"catalog", "editor", "serve", "storage"}
	if strings.Join(topics, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected topics: %v", topics)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Editor ")
	if !ok || !strings.Contains(body, "ctrl+s") {
		t.Fatalf("expected editor guide, got ok=%v", ok)
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("expected path-like topic to be rejected")
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected unknown topic to be missing")
	}
}
