package main

import (
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/stemsi/roster/internal/model"
)

// newCommandParser builds a fresh parser per line so no option value
// leaks from one command into the next.
func newCommandParser(sh *shell) *flags.Parser {
	p := flags.NewNamedParser("roster", flags.HelpFlag|flags.PassDoubleDash)

	mustAdd(p, "insert", "Add a student", "Add a student. The grade defaults to 0 when omitted.", &insertCmd{sh: sh})
	mustAdd(p, "update", "Change a student's name and/or grade", "Fields left out are not changed.", &updateCmd{sh: sh})
	mustAdd(p, "delete", "Remove a student", "", &deleteCmd{sh: sh})
	mustAdd(p, "search", "Show the student with an id", "The search stays the active view until the next sort or search.", &searchCmd{sh: sh})
	mustAdd(p, "sort", "Show all students in order", "The order stays the active view until the next sort or search.", &sortCmd{sh: sh})
	mustAdd(p, "list", "Show the rows of the active view", "", &listCmd{sh: sh})
	mustAdd(p, "view", "Print the active view", "", &viewCmd{sh: sh})
	mustAdd(p, "help", "List commands", "", &helpCmd{sh: sh, parser: p})
	quit := &quitCmd{sh: sh}
	mustAdd(p, "quit", "Leave the shell", "", quit)
	mustAdd(p, "exit", "Leave the shell", "", quit)

	return p
}

func mustAdd(p *flags.Parser, name, short, long string, data any) {
	if _, err := p.AddCommand(name, short, long, data); err != nil {
		panic(fmt.Sprintf("add command %s: %v", name, err))
	}
}

type insertCmd struct {
	ID    string `long:"id" description:"Student id, a positive integer"`
	Name  string `long:"name" description:"Student name"`
	Grade string `long:"grade" description:"Grade from 0 to 100"`
	sh    *shell
}

func (c *insertCmd) Execute([]string) error {
	c.sh.render(c.sh.svc.Insert(c.sh.ctx, model.StudentInput{ID: c.ID, Name: c.Name, Grade: c.Grade}))
	return nil
}

type updateCmd struct {
	ID    string `long:"id" description:"Id of the student to change"`
	Name  string `long:"name" description:"New name"`
	Grade string `long:"grade" description:"New grade from 0 to 100"`
	sh    *shell
}

func (c *updateCmd) Execute([]string) error {
	c.sh.render(c.sh.svc.Update(c.sh.ctx, model.StudentInput{ID: c.ID, Name: c.Name, Grade: c.Grade}))
	return nil
}

type deleteCmd struct {
	ID string `long:"id" description:"Id of the student to remove"`
	sh *shell
}

func (c *deleteCmd) Execute([]string) error {
	c.sh.render(c.sh.svc.Delete(c.sh.ctx, c.ID))
	return nil
}

type searchCmd struct {
	ID string `long:"id" description:"Id to look up"`
	sh *shell
}

func (c *searchCmd) Execute([]string) error {
	c.sh.render(c.sh.svc.Search(c.sh.ctx, c.ID))
	return nil
}

type sortCmd struct {
	Field string `long:"field" default:"id" description:"Column to sort by: id or grade"`
	Order string `long:"order" default:"ascending" description:"ascending or descending"`
	sh    *shell
}

func (c *sortCmd) Execute([]string) error {
	c.sh.render(c.sh.svc.Sort(c.sh.ctx, c.Field, c.Order))
	return nil
}

type listCmd struct{ sh *shell }

func (c *listCmd) Execute([]string) error {
	c.sh.render(c.sh.svc.Refresh(c.sh.ctx))
	return nil
}

type viewCmd struct{ sh *shell }

func (c *viewCmd) Execute([]string) error {
	fmt.Fprintf(c.sh.out, "view: %s\n", c.sh.svc.CurrentView())
	return nil
}

type helpCmd struct {
	sh     *shell
	parser *flags.Parser
}

func (c *helpCmd) Execute([]string) error {
	// Parsing made "help" the active command; clear it to list every command.
	c.parser.Active = nil
	c.parser.WriteHelp(c.sh.out)
	return nil
}

type quitCmd struct{ sh *shell }

func (c *quitCmd) Execute([]string) error {
	c.sh.done = true
	return nil
}
