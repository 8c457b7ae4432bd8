package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteDirectAddArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"formbench"},
			want: []string{"formbench"},
		},
		{
			name: "kind first token",
			in:   []string{"formbench", "input"},
			want: []string{"formbench", "add", "input"},
		},
		{
			name: "kind keeps trailing flags",
			in:   []string{"formbench", "button", "--at", "0"},
			want: []string{"formbench", "add", "button", "--at", "0"},
		},
		{
			name: "kind after value flag",
			in:   []string{"formbench", "--dir", "./tmp-test-ws", "heading"},
			want: []string{"formbench", "--dir", "./tmp-test-ws", "add", "heading"},
		},
		{
			name: "kind after equals flag",
			in:   []string{"formbench", "--dir=./tmp-test-ws", "textarea"},
			want: []string{"formbench", "--dir=./tmp-test-ws", "add", "textarea"},
		},
		{
			name: "kind after bool flag",
			in:   []string{"formbench", "--pretty", "subheading"},
			want: []string{"formbench", "--pretty", "add", "subheading"},
		},
		{
			name: "kind after double dash",
			in:   []string{"formbench", "--dir", "./tmp-test-ws", "--", "input"},
			want: []string{"formbench", "--dir", "./tmp-test-ws", "--", "add", "input"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"formbench", "add", "input"},
			want: []string{"formbench", "add", "input"},
		},
		{
			name: "value flag argument is not a kind",
			in:   []string{"formbench", "--workspace", "input", "show"},
			want: []string{"formbench", "--workspace", "input", "show"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"formbench", "wat"},
			want: []string{"formbench", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectAddArgs(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("rewriteDirectAddArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
