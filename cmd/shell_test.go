package cmd

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/search"
	"github.com/killallgit/book-search/internal/services/sessions"
)

func TestParseShellLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    shellCommand
		wantErr string
	}{
		{name: "blank", line: "   ", want: shellCommand{action: actionNone}},
		{name: "search keeps text", line: "the hobbit", want: shellCommand{action: actionSearch, text: "the hobbit"}},
		{name: "page", line: ":page 3", want: shellCommand{action: actionPage, n: 3}},
		{name: "page alias", line: ":p 2", want: shellCommand{action: actionPage, n: 2}},
		{name: "size", line: " :size 50 ", want: shellCommand{action: actionSize, n: 50}},
		{name: "next", line: ":next", want: shellCommand{action: actionNext}},
		{name: "prev", line: ":prev", want: shellCommand{action: actionPrev}},
		{name: "url", line: ":url", want: shellCommand{action: actionURL}},
		{name: "quit", line: ":q", want: shellCommand{action: actionQuit}},
		{name: "help", line: ":help", want: shellCommand{action: actionHelp}},
		{name: "page without number", line: ":page", wantErr: ":page needs one number"},
		{name: "page not a number", line: ":page two", wantErr: `:page: "two" is not a number`},
		{name: "unknown", line: ":bogus", wantErr: "unknown command :bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseShellLine(tt.line)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type echoFetcher struct{}

func (echoFetcher) Fetch(ctx context.Context, cs models.CurrentSearch, n search.Notifier) models.SearchResult {
	return models.SearchResult{NumFound: 30, Docs: []models.Doc{{Title: cs.SearchText}}}
}

func TestShellCommand_Apply(t *testing.T) {
	m := sessions.NewManager(sessions.Config{DefaultPageSize: 10, Debounce: 10 * time.Millisecond}, echoFetcher{})
	defer m.Shutdown()
	s := m.Create(url.Values{})

	steps := []struct {
		line string
		want models.CurrentSearch
	}{
		{line: "dune", want: models.CurrentSearch{SearchText: "dune", PageSize: 10, Page: 1}},
		{line: ":next", want: models.CurrentSearch{SearchText: "dune", PageSize: 10, Page: 2}},
		{line: ":page 3", want: models.CurrentSearch{SearchText: "dune", PageSize: 10, Page: 3}},
		{line: ":prev", want: models.CurrentSearch{SearchText: "dune", PageSize: 10, Page: 2}},
		{line: ":size 5", want: models.CurrentSearch{SearchText: "dune", PageSize: 5, Page: 1}},
	}

	var out strings.Builder
	for _, step := range steps {
		c, err := parseShellLine(step.line)
		require.NoError(t, err)
		quit, err := c.apply(&out, s)
		require.NoError(t, err)
		assert.False(t, quit)
		assert.Equal(t, step.want, *s.State().Search, step.line)
	}

	c, _ := parseShellLine(":prev")
	_, err := c.apply(&out, s)
	assert.Error(t, err, "page 0 is rejected")

	c, _ = parseShellLine(":url")
	_, err = c.apply(&out, s)
	require.NoError(t, err)
	assert.Equal(t, "/?page=1&pageSize=5&searchText=dune\n", out.String())

	c, _ = parseShellLine(":quit")
	quit, err := c.apply(&out, s)
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   sessions.Event
		want string
	}{
		{
			name: "alert",
			ev:   sessions.Event{Type: sessions.EventAlert, Data: sessions.AlertPayload{Message: "HTTP error: boom"}},
			want: "! HTTP error: boom",
		},
		{
			name: "state",
			ev:   sessions.Event{Type: sessions.EventState, Data: sessions.StatePayload{Query: "page=1&pageSize=10&searchText=dune"}},
			want: "# page=1&pageSize=10&searchText=dune",
		},
		{
			name: "results",
			ev: sessions.Event{Type: sessions.EventResults, Data: sessions.ResultsPayload{
				Search: models.CurrentSearch{SearchText: "dune", PageSize: 10, Page: 1},
				Result: models.EmptyResult(),
			}},
			want: "No results\n0 of 0 (page 1 of 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatEvent(tt.ev))
		})
	}
}
