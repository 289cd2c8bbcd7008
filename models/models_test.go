package models

import "testing"

func TestFetchArticlesOptionsPaging(t *testing.T) {
	tests := []struct {
		name       string
		opts       FetchArticlesOptions
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", opts: FetchArticlesOptions{}, wantLimit: 100, wantOffset: 0},
		{name: "first page", opts: FetchArticlesOptions{Page: 1, Limit: 3}, wantLimit: 3, wantOffset: 0},
		{name: "second page", opts: FetchArticlesOptions{Page: 2, Limit: 3}, wantLimit: 3, wantOffset: 3},
		{name: "page without limit", opts: FetchArticlesOptions{Page: 3}, wantLimit: 100, wantOffset: 200},
		{name: "negative page", opts: FetchArticlesOptions{Page: -4, Limit: 10}, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.EffectiveLimit(); got != tt.wantLimit {
				t.Fatalf("limit: got %d, want %d", got, tt.wantLimit)
			}
			if got := tt.opts.Offset(); got != tt.wantOffset {
				t.Fatalf("offset: got %d, want %d", got, tt.wantOffset)
			}
		})
	}
}
