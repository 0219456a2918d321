package source

import "testing"

func TestSpanCover(t *testing.T) {
	cases := []struct {
		name  string
		a, b  Span
		want  Span
	}{
		{
			name: "disjoint extends",
			a:    Span{File: 1, Start: 10, End: 12},
			b:    Span{File: 1, Start: 20, End: 25},
			want: Span{File: 1, Start: 10, End: 25},
		},
		{
			name: "contained keeps",
			a:    Span{File: 1, Start: 10, End: 30},
			b:    Span{File: 1, Start: 12, End: 14},
			want: Span{File: 1, Start: 10, End: 30},
		},
		{
			name: "other file ignored",
			a:    Span{File: 1, Start: 10, End: 12},
			b:    Span{File: 2, Start: 0, End: 100},
			want: Span{File: 1, Start: 10, End: 12},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Cover(tc.b); got != tc.want {
				t.Fatalf("Cover = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSpanEmptyLen(t *testing.T) {
	s := Span{File: 1, Start: 5, End: 5}
	if !s.Empty() {
		t.Fatalf("expected empty span")
	}
	s.End = 9
	if s.Empty() || s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
}
