package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSearch(t *testing.T) {
	dune := CurrentSearch{SearchText: "dune", PageSize: 10, Page: 1}

	tests := []struct {
		name string
		a, b *CurrentSearch
		want bool
	}{
		{"both absent", nil, nil, true},
		{"one absent", dune.Ptr(), nil, false},
		{"other absent", nil, dune.Ptr(), false},
		{"equal values, distinct pointers", dune.Ptr(), dune.Ptr(), true},
		{"different page", dune.Ptr(), &CurrentSearch{SearchText: "dune", PageSize: 10, Page: 2}, false},
		{"different text", dune.Ptr(), &CurrentSearch{SearchText: "Dune", PageSize: 10, Page: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameSearch(tt.a, tt.b))
		})
	}
}

func TestEmptyResult_SerializesEmptyDocs(t *testing.T) {
	data, err := json.Marshal(EmptyResult())
	require.NoError(t, err)
	assert.JSONEq(t, `{"num_found":0,"docs":[]}`, string(data))
}

func TestSearchResult_DecodesRemoteShape(t *testing.T) {
	body := `{"num_found":5,"docs":[{"title":"Dune","author_name":["Frank Herbert"],"cover_edition_key":"OL1M","extra":true}]}`

	var result SearchResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, 5, result.NumFound)
	require.Len(t, result.Docs, 1)
	assert.Equal(t, "Dune", result.Docs[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, result.Docs[0].AuthorName)
	assert.Equal(t, "OL1M", result.Docs[0].CoverEditionKey)
}

func TestPaginator(t *testing.T) {
	tests := []struct {
		name       string
		search     CurrentSearch
		numFound   int
		wantPages  int
		wantIndex  int
		wantPrev   bool
		wantNext   bool
		wantLabel  string
	}{
		{"five results at size ten", CurrentSearch{"dune", 10, 1}, 5, 1, 0, false, false, "1 – 5 of 5"},
		{"middle page", CurrentSearch{"dune", 10, 2}, 42, 5, 1, true, true, "11 – 20 of 42"},
		{"last page", CurrentSearch{"dune", 10, 5}, 42, 5, 4, true, false, "41 – 42 of 42"},
		{"no results", CurrentSearch{"zzz", 10, 1}, 0, 0, 0, false, false, "0 of 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginator(tt.search, SearchResult{NumFound: tt.numFound})
			assert.Equal(t, tt.numFound, p.Length)
			assert.Equal(t, tt.search.PageSize, p.PageSize)
			assert.Equal(t, tt.wantIndex, p.PageIndex)
			assert.Equal(t, tt.wantPages, p.TotalPages())
			assert.Equal(t, tt.wantPrev, p.HasPrevious())
			assert.Equal(t, tt.wantNext, p.HasNext())
			assert.Equal(t, tt.wantLabel, p.RangeLabel())
		})
	}
}
