package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/midbel/cli"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/check"
	"github.com/peternovig/formulae/formula/export"
	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/parse"
	"github.com/peternovig/formulae/formula/printer"
	"github.com/peternovig/formulae/formula/scan"
	"github.com/peternovig/formulae/internal/config"
	"github.com/peternovig/formulae/oxml"
)

// readFormula returns the formula given as arguments or, without argument,
// the content of stdin.
func (e *Env) readFormula(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	buf, err := io.ReadAll(e.Stdin)
	if err != nil {
		return "", err
	}
	str := strings.TrimSpace(string(buf))
	if str == "" {
		return "", fmt.Errorf("no formula given")
	}
	return str, nil
}

// parseFormula parses the formula given on the command line. In strict mode
// the tree must also pass the checker.
func (e *Env) parseFormula(args []string, strict bool) (ast.Expr, error) {
	str, err := e.readFormula(args)
	if err != nil {
		return nil, err
	}
	e.Logger.Debug("parse formula", "formula", str)
	expr, err := parse.ParseString(str)
	if err != nil {
		return nil, err
	}
	if !strict {
		return expr, nil
	}
	if err := check.Check(expr); err != nil {
		e.Logger.Warn("formula rejected by checker", "formula", str)
		return nil, err
	}
	return expr, nil
}

type DumpCommand struct {
	*Env
	Color  bool
	Indent int
}

func (c DumpCommand) Run(args []string) error {
	set := cli.NewFlagSet("dump")
	set.BoolVar(&c.Color, "color", c.Config.Color, "highlight variant and field names")
	set.IntVar(&c.Indent, "i", c.Config.Indent, "number of spaces per level")
	if err := set.Parse(args); err != nil {
		return err
	}
	expr, err := c.parseFormula(set.Args(), c.Config.Strict)
	if err != nil {
		return err
	}
	str := ast.DumpIndent(expr, strings.Repeat(" ", max(c.Indent, 0)))
	if c.Color {
		str = highlight(str)
	}
	fmt.Fprintln(c.Stdout, str)
	return nil
}

type TokensCommand struct {
	*Env
}

func (c TokensCommand) Run(args []string) error {
	set := cli.NewFlagSet("tokens")
	if err := set.Parse(args); err != nil {
		return err
	}
	str, err := c.readFormula(set.Args())
	if err != nil {
		return err
	}
	var invalid int

	t := table.NewWriter()
	t.SetOutputMirror(c.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Position", "Type", "Literal"})
	for _, tok := range scan.Tokens(str) {
		if tok.Type == op.EOF {
			break
		}
		if tok.Type == op.Invalid {
			invalid++
		}
		t.AppendRow(table.Row{tok.Position.String(), op.Name(tok.Type), tok.Literal})
	}
	t.Render()

	if invalid > 0 {
		return fmt.Errorf("%d invalid token(s)", invalid)
	}
	return nil
}

type CheckCommand struct {
	*Env
}

func (c CheckCommand) Run(args []string) error {
	set := cli.NewFlagSet("check")
	if err := set.Parse(args); err != nil {
		return err
	}
	expr, err := c.parseFormula(set.Args(), false)
	if err != nil {
		return err
	}
	if err := check.Check(expr); err != nil {
		c.Logger.Warn("formula rejected by checker", "formula", printer.Format(expr))
		printErrors(c.Stdout, err)
		return errFail
	}
	fmt.Fprintln(c.Stdout, "ok")
	return nil
}

func printErrors(w io.Writer, err error) {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			fmt.Fprintln(w, e)
		}
		return
	}
	fmt.Fprintln(w, err)
}

type FormatCommand struct {
	*Env
}

func (c FormatCommand) Run(args []string) error {
	set := cli.NewFlagSet("fmt")
	if err := set.Parse(args); err != nil {
		return err
	}
	expr, err := c.parseFormula(set.Args(), c.Config.Strict)
	if err != nil {
		return err
	}
	return printer.Fprint(c.Stdout, expr)
}

type ExportCommand struct {
	*Env
	Format string
}

func (c ExportCommand) Run(args []string) error {
	set := cli.NewFlagSet("export")
	c.Format = c.Config.Output
	set.Func("f", "output format (text, yaml, json)", func(str string) error {
		switch str {
		case config.OutputText, config.OutputYAML, config.OutputJSON:
			c.Format = str
			return nil
		default:
			return fmt.Errorf("%s: unsupported export format", str)
		}
	})
	if err := set.Parse(args); err != nil {
		return err
	}
	expr, err := c.parseFormula(set.Args(), c.Config.Strict)
	if err != nil {
		return err
	}
	switch c.Format {
	case config.OutputJSON:
		return export.JSON(c.Stdout, expr)
	case config.OutputYAML:
		return export.YAML(c.Stdout, expr)
	default:
		_, err = fmt.Fprintln(c.Stdout, ast.DumpIndent(expr, c.Config.IndentString()))
		return err
	}
}

type ExtractCommand struct {
	*Env
	Check bool
	Sheet string
}

func (c ExtractCommand) Run(args []string) error {
	set := cli.NewFlagSet("extract")
	set.BoolVar(&c.Check, "c", c.Config.Strict, "run the checker on each formula")
	set.StringVar(&c.Sheet, "s", "", "only list formulas of sheet")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("no spreadsheet given")
	}
	c.Logger.Debug("open spreadsheet", "file", set.Arg(0))
	file, err := oxml.Open(set.Arg(0))
	if err != nil {
		return err
	}
	list := file.Formulas()
	if c.Sheet != "" {
		sh, err := file.Sheet(c.Sheet)
		if err != nil {
			return err
		}
		list = sh.Formulas
	}
	c.Logger.Debug("formulas found", "count", len(list))
	return c.render(list)
}

func (c ExtractCommand) render(list []oxml.Formula) error {
	var failed int

	t := table.NewWriter()
	t.SetOutputMirror(c.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Sheet", "Cell", "Formula", "Status"})
	for _, f := range list {
		status := "ok"
		if f.Shared {
			status = "shared"
		}
		err := f.Err
		if err == nil && c.Check {
			err = check.Check(f.Expr)
		}
		if err != nil {
			failed++
			status = errorLine(err)
			c.Logger.Warn("invalid formula", "sheet", f.Sheet, "cell", f.Cell, "err", err)
		}
		t.AppendRow(table.Row{f.Sheet, f.Cell, "=" + f.Text, status})
	}
	t.Render()
	if failed > 0 {
		return fmt.Errorf("%d invalid formula(s)", failed)
	}
	return nil
}

func errorLine(err error) string {
	if errors.Is(err, parse.ErrSyntax) {
		return err.Error()
	}
	var parts []string
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			parts = append(parts, e.Error())
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}
