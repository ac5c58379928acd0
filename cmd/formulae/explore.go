package main

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/midbel/cli"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/check"
	"github.com/peternovig/formulae/formula/parse"
)

type ExploreCommand struct {
	*Env
}

func (c ExploreCommand) Run(args []string) error {
	set := cli.NewFlagSet("explore")
	if err := set.Parse(args); err != nil {
		return err
	}
	m := newExplorer(strings.Join(set.Args(), " "), c.Config.IndentString(), c.Config.Color)
	_, err := tea.NewProgram(m).Run()
	return err
}

type explorer struct {
	input  textinput.Model
	indent string
	color  bool

	tree     string
	err      error
	problems error
}

func newExplorer(formula, indent string, color bool) explorer {
	in := textinput.New()
	in.Prompt = "= "
	in.Placeholder = "SUM(A1:A10, 2)"
	in.SetValue(formula)
	in.Focus()

	m := explorer{
		input:  in,
		indent: indent,
		color:  color,
	}
	m.refresh()
	return m
}

func (m explorer) Init() tea.Cmd {
	return nil
}

func (m explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		default:
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m explorer) View() tea.View {
	var str strings.Builder
	str.WriteString(m.input.View())
	str.WriteString("\n\n")
	switch {
	case m.err != nil:
		str.WriteString(errorStyle.Render(m.err.Error()))
	case m.tree != "":
		str.WriteString(m.tree)
		if m.problems != nil {
			str.WriteString("\n\n")
			str.WriteString(errorStyle.Render(m.problems.Error()))
		}
	default:
	}
	str.WriteString("\n\n")
	str.WriteString(mutedStyle.Render("esc: quit"))
	return tea.NewView(str.String())
}

// refresh parses the current input and updates the tree or the error shown.
func (m *explorer) refresh() {
	m.tree, m.err, m.problems = "", nil, nil

	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return
	}
	expr, err := parse.ParseString(value)
	if err != nil {
		m.err = err
		return
	}
	m.tree = ast.DumpIndent(expr, m.indent)
	if m.color {
		m.tree = highlight(m.tree)
	}
	m.problems = check.Check(expr)
}
