package pdftext

import (
	"reflect"
	"testing"
)

func TestSortPDFsByNumber(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "numeric suffixes sort numerically",
			in:   []string{"book-2.pdf", "book-10.pdf", "book-1.pdf"},
			want: []string{"book-1.pdf", "book-2.pdf", "book-10.pdf"},
		},
		{
			name: "no suffixes sort lexicographically",
			in:   []string{"zebra.pdf", "apple.pdf"},
			want: []string{"apple.pdf", "zebra.pdf"},
		},
		{
			name: "single file",
			in:   []string{"cookbook.pdf"},
			want: []string{"cookbook.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortPDFsByNumber(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPartList_FindPartForPage(t *testing.T) {
	parts := PartList{
		{Path: "a.pdf", StartPage: 1, EndPage: 100},
		{Path: "b.pdf", StartPage: 101, EndPage: 250},
	}

	tests := []struct {
		page     int
		wantPath string
		wantIn   int
	}{
		{1, "a.pdf", 1},
		{100, "a.pdf", 100},
		{101, "b.pdf", 1},
		{250, "b.pdf", 150},
		{251, "", 0},
		{0, "", 0},
	}

	for _, tt := range tests {
		path, in := parts.FindPartForPage(tt.page)
		if path != tt.wantPath || in != tt.wantIn {
			t.Errorf("FindPartForPage(%d) = (%q, %d), want (%q, %d)",
				tt.page, path, in, tt.wantPath, tt.wantIn)
		}
	}
}

func TestPartList_TotalPages(t *testing.T) {
	if got := (PartList{}).TotalPages(); got != 0 {
		t.Errorf("empty list TotalPages = %d, want 0", got)
	}

	parts := PartList{
		{Path: "a.pdf", StartPage: 1, EndPage: 100},
		{Path: "b.pdf", StartPage: 101, EndPage: 250},
	}
	if got := parts.TotalPages(); got != 250 {
		t.Errorf("TotalPages = %d, want 250", got)
	}
}
