package domain

import "testing"

func TestSummarize(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		average float64
		count   int64
	}{
		{"empty", nil, 0, 0},
		{"single", []int{4}, 4, 1},
		{"mixed", []int{5, 3}, 4, 2},
		{"non-integer average", []int{5, 4, 4}, 13.0 / 3.0, 3},
		{"all minimum", []int{1, 1, 1, 1}, 1, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviews := make([]*Review, 0, len(tc.ratings))
			for _, r := range tc.ratings {
				reviews = append(reviews, &Review{Rating: r})
			}
			got := Summarize(reviews)
			if got.Average != tc.average || got.Count != tc.count {
				t.Fatalf("got %+v, want average=%v count=%d", got, tc.average, tc.count)
			}
		})
	}
}
