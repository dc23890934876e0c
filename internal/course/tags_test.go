package course

import (
	"reflect"
	"testing"
)

func TestDeriveTags(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		context string
		want    []string
	}{
		{
			name:  "capped_at_three_in_vocabulary_order",
			title: "React and Vue Frontend Tutorial",
			want:  []string{"react", "vue", "frontend"},
		},
		{
			name:    "case_insensitive",
			title:   "DOCKER deep dive",
			context: "I want to learn Kubernetes",
			want:    []string{"docker", "kubernetes"},
		},
		{
			name:    "matches_context_too",
			title:   "Some course",
			context: "building a backend API",
			want:    []string{"backend", "api"},
		},
		{
			name:  "no_matches",
			title: "Gardening for beginners",
			want:  nil,
		},
		{
			name:  "cap_prefers_earlier_vocabulary_entries",
			title: "react vue angular svelte frontend backend",
			want:  []string{"react", "vue", "angular"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveTags(tc.title, tc.context)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DeriveTags(%q,%q)=%v, want %v", tc.title, tc.context, got, tc.want)
			}
		})
	}
}

func TestDeriveTagsDeterministic(t *testing.T) {
	first := DeriveTags("React Frontend with a Database", "")
	for i := 0; i < 10; i++ {
		if got := DeriveTags("React Frontend with a Database", ""); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
