package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/killallgit/book-search/internal/services/searchform"
	"github.com/killallgit/book-search/internal/services/sessions"
)

// shellCmd drives one search session from the terminal
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Search interactively from the terminal",
	Long: `Start an interactive prompt bound to one search session.

Type text and press enter to search. Results arrive after the debounce
delay, and a newer search replaces one still in flight.

Commands:
  :page N   go to page N
  :next     next page
  :prev     previous page
  :size N   change the page size and go back to page 1
  :url      print the current query string
  :quit     leave the shell

Example:
  book-search shell
  book-search shell --query "searchText=dune&pageSize=5"`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().String("query", "", "initial query string, as found in a page URL")
}

type shellAction int

const (
	actionNone shellAction = iota
	actionSearch
	actionPage
	actionNext
	actionPrev
	actionSize
	actionURL
	actionQuit
	actionHelp
)

type shellCommand struct {
	action shellAction
	text   string
	n      int
}

var shellCommands = []string{":page", ":next", ":prev", ":size", ":url", ":quit", ":help"}

// parseShellLine turns one prompt line into a command.
func parseShellLine(line string) (shellCommand, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return shellCommand{action: actionNone}, nil
	}
	if !strings.HasPrefix(trimmed, ":") {
		return shellCommand{action: actionSearch, text: line}, nil
	}

	fields := strings.Fields(trimmed)
	name, rest := fields[0], fields[1:]

	number := func() (int, error) {
		if len(rest) != 1 {
			return 0, fmt.Errorf("%s needs one number", name)
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", name, rest[0])
		}
		return n, nil
	}

	switch name {
	case ":page", ":p":
		n, err := number()
		return shellCommand{action: actionPage, n: n}, err
	case ":size", ":s":
		n, err := number()
		return shellCommand{action: actionSize, n: n}, err
	case ":next", ":n":
		return shellCommand{action: actionNext}, nil
	case ":prev":
		return shellCommand{action: actionPrev}, nil
	case ":url":
		return shellCommand{action: actionURL}, nil
	case ":quit", ":q", ":exit":
		return shellCommand{action: actionQuit}, nil
	case ":help", ":h":
		return shellCommand{action: actionHelp}, nil
	}
	return shellCommand{}, fmt.Errorf("unknown command %s (try :help)", name)
}

// apply runs c against the session. It reports whether the shell should exit.
func (c shellCommand) apply(out io.Writer, s *sessions.Session) (bool, error) {
	h := s.Holder()
	page := 1
	if v := h.Value(); v != nil {
		page = v.Page
	}

	switch c.action {
	case actionSearch:
		return false, searchform.Submit(h, c.text)
	case actionPage:
		return false, searchform.ChangePage(h, c.n, h.PageSize())
	case actionNext:
		return false, searchform.ChangePage(h, page+1, h.PageSize())
	case actionPrev:
		return false, searchform.ChangePage(h, page-1, h.PageSize())
	case actionSize:
		return false, searchform.ChangePage(h, 1, c.n)
	case actionURL:
		fmt.Fprintf(out, "/?%s\n", s.State().Query)
	case actionHelp:
		fmt.Fprintln(out, "commands: "+strings.Join(shellCommands, " "))
	case actionQuit:
		return true, nil
	}
	return false, nil
}

// formatEvent renders a session event for the terminal.
func formatEvent(ev sessions.Event) string {
	switch data := ev.Data.(type) {
	case sessions.AlertPayload:
		return "! " + data.Message
	case sessions.ResultsPayload:
		var b strings.Builder
		printResult(&b, data.Search, data.Result)
		return strings.TrimRight(b.String(), "\n")
	case sessions.StatePayload:
		return "# " + data.Query
	}
	return fmt.Sprintf("%s: %v", ev.Type, ev.Data)
}

func shellHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "book-search", "shell_history")
}

func runShell(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	rawQuery, _ := cmd.Flags().GetString("query")
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	db, repo, err := openHistory(appConfig)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	manager := sessions.NewManager(sessions.Config{
		DefaultPageSize: appConfig.Search.DefaultPageSize,
		Debounce:        appConfig.Search.Debounce,
		EventBuffer:     appConfig.Sessions.EventBuffer,
	}, newSearchService(appConfig, repo))
	defer manager.Shutdown()

	session := manager.Create(q)
	events, unsubscribe := session.Subscribe()
	defer unsubscribe()

	out := cmd.OutOrStdout()
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for ev := range events {
			// State echoes are noise at the prompt; :url shows them on demand
			if ev.Type == sessions.EventState {
				continue
			}
			fmt.Fprintln(out, formatEvent(ev))
		}
	}()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(in string) []string {
		var c []string
		for _, name := range shellCommands {
			if strings.HasPrefix(name, in) {
				c = append(c, name)
			}
		}
		return c
	})

	historyPath := shellHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(out, "Type a search, or :help for commands.")
	for ctx.Err() == nil {
		input, err := line.Prompt("search> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading prompt: %w", err)
		}

		c, err := parseShellLine(input)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		if c.action != actionNone {
			line.AppendHistory(input)
		}

		quit, err := c.apply(out, session)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		if quit {
			break
		}
	}

	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err == nil {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = line.WriteHistory(f)
				f.Close()
			}
		}
	}

	unsubscribe()
	<-printed
	logrus.WithField("session_id", session.ID).Debug("Shell session ended")
	return nil
}
