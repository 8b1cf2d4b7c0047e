package cli

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand dispatches a text command and returns a tea.Cmd.
// A few words map to views; everything else runs through the cobra tree and
// its output is shown in the content area.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(formatter.Alert(err.Error()))
	}
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit":
		return func() tea.Msg { return quitMsg{} }
	case "clear":
		return nil
	case "new":
		return pushView(newCreateClientView(c.state))
	case "open":
		if len(args) != 1 {
			return outputCmd(formatter.StyleYellow.Render("Usage: open <client-id>"))
		}
		return pushView(newClientDetailView(c.state, args[0]))
	case "edit":
		if len(args) != 1 {
			return outputCmd(formatter.StyleYellow.Render("Usage: edit <client-id>"))
		}
		return openEditClientCmd(c.state, args[0])
	case "serve":
		return outputCmd(formatter.StyleYellow.Render("Run 'clientdesk serve' outside the dashboard."))
	}

	if needsDeleteConfirm(parts) {
		return c.confirmCobraDelete(parts)
	}

	app := c.state.App
	return tea.Batch(
		func() tea.Msg { return cmdOutputMsg{output: captureCobraOutput(app, parts)} },
		refreshViews(),
	)
}

// needsDeleteConfirm reports whether parts is a "client delete" without
// --yes, which would otherwise prompt on stdin underneath the TUI.
func needsDeleteConfirm(parts []string) bool {
	if len(parts) < 3 || parts[0] != "client" || parts[1] != "delete" {
		return false
	}
	return !slices.Contains(parts, "--yes") && !slices.Contains(parts, "-y")
}

func (c *commandBar) confirmCobraDelete(parts []string) tea.Cmd {
	state := c.state
	args := append(slices.Clone(parts), "--yes")
	return func() tea.Msg {
		name := parts[2]
		if cl, err := state.App.Clients.Get(context.Background(), parts[2]); err == nil {
			name = cl.Name
		}
		confirm := execConfirm(state, deleteClientPrompt(name), "Confirm Delete", func() tea.Msg {
			return cmdOutputMsg{output: captureCobraOutput(state.App, args)}
		})
		return confirm()
	}
}

// captureCobraOutput runs a command through the cobra tree and returns what
// it printed. Errors are rendered as alerts.
func captureCobraOutput(app *App, args []string) string {
	var buf bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString(formatter.Alert(err.Error()))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// commandNames maps each parent command ("" for the root) to its
// subcommand names, read from the cobra tree.
func commandNames(app *App) map[string][]string {
	names := map[string][]string{}
	root := NewRootCmd(app)
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "completion" {
			continue
		}
		names[""] = append(names[""], cmd.Name())
		for _, sub := range cmd.Commands() {
			names[cmd.Name()] = append(names[cmd.Name()], sub.Name())
		}
	}
	names[""] = append(names[""], "new", "open", "edit", "clear", "quit")
	slices.Sort(names[""])
	return names
}

// splitShellArgs splits a command line into words, honoring single and
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}
