package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

// prompter drives find-or-create from a terminal. It satisfies both
// service.Selector and service.DetailsCollector.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", service.ErrReconcileAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) Select(_ context.Context, term string, candidates []domain.Person) (int, error) {
	fmt.Fprintln(p.out, headerStyle.Render(fmt.Sprintf("People matching %q", term)))
	for i, c := range candidates {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c.OneLine())
	}
	fmt.Fprintln(p.out, "  0) none of these, create new")
	for {
		answer, err := p.ask("choice: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 0 || n > len(candidates) {
			fmt.Fprintln(p.out, errStyle.Render("enter a number from the list"))
			continue
		}
		if n == 0 {
			return service.NoSelection, nil
		}
		return n - 1, nil
	}
}

func (p *prompter) Collect(_ context.Context, term string) (service.PersonDetails, error) {
	var d service.PersonDetails
	for {
		answer, err := p.ask(fmt.Sprintf("is %q a (f)irst name or (s)urname? ", term))
		if err != nil {
			return d, err
		}
		switch strings.ToLower(answer) {
		case "f", "first":
			d.TermIsSurname = false
		case "s", "surname":
			d.TermIsSurname = true
		default:
			continue
		}
		break
	}

	other := "surname: "
	if d.TermIsSurname {
		other = "first name: "
	}
	var err error
	if d.OtherName, err = p.ask(other); err != nil {
		return d, err
	}
	if d.Email, err = p.ask("email: "); err != nil {
		return d, err
	}
	if d.Address, err = p.ask("address: "); err != nil {
		return d, err
	}
	return d, nil
}
