// Package prompt collects analysis inputs interactively from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"ReinvestAnalyzer/internal/calculator"
	"ReinvestAnalyzer/internal/model"

	"github.com/shopspring/decimal"
)

// ErrInputClosed is returned when the input ends before a required answer.
var ErrInputClosed = errors.New("input closed")

// DepositStore is the ledger the deposit loop edits.
type DepositStore interface {
	Add(year int, amount float64) error
	Undo() (year int, amount float64, ok bool, err error)
	Deposits() model.Ledger
}

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) ask(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %s", s)
	}
	return v, nil
}

func (p *Prompter) askNumber(question string) (float64, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		v, err := parseNumber(answer)
		if err != nil {
			p.printf("Invalid input. Please enter a valid number.\n")
			continue
		}
		return v, nil
	}
}

func (p *Prompter) printInstructions() {
	p.printf("\n%s\n", strings.Repeat("=", 50))
	p.printf("Instructions:\n")
	p.printf("- Enter the year and the total amount deposited in that year.\n")
	p.printf("- Type 'undo' to remove the deposit with the latest year.\n")
	p.printf("- Type 'done' to finish entering deposits and proceed.\n")
	p.printf("- Type 'help' at any time to see these instructions again.\n")
	p.printf("%s\n\n", strings.Repeat("=", 50))
}

// Deposits runs the deposit loop until the user types done with at least one
// deposit in the store.
func (p *Prompter) Deposits(store DepositStore) error {
	p.printf("Please enter your current investment deposits:\n")
	p.printInstructions()
	for {
		answer, err := p.ask("Enter the year of deposit (or 'done', 'undo', 'help'): ")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "done":
			if len(store.Deposits()) == 0 {
				p.printf("You must enter at least one deposit before proceeding.\n")
				continue
			}
			return nil
		case "undo":
			year, _, ok, err := store.Undo()
			if err != nil {
				return err
			}
			if !ok {
				p.printf("No deposits to undo.\n")
				continue
			}
			p.printf("Removed deposit for year %d\n", year)
			continue
		case "help":
			p.printInstructions()
			continue
		}

		year, err := strconv.Atoi(answer)
		if err != nil {
			p.printf("Invalid input. Please enter a valid year and deposit amount.\n")
			continue
		}
		amountAnswer, err := p.ask(fmt.Sprintf("Enter total deposit amount for %d: ", year))
		if err != nil {
			return err
		}
		amount, err := parseNumber(amountAnswer)
		if err != nil {
			p.printf("Invalid input. Please enter a valid year and deposit amount.\n")
			continue
		}
		if err := store.Add(year, amount); err != nil {
			return err
		}
		p.printf("Added deposit of %s for year %d\n", decimal.NewFromFloat(amount).StringFixed(2), year)
	}
}

// CurrentDetails asks for the current worth and annual commission of the holding.
func (p *Prompter) CurrentDetails() (value, commission float64, err error) {
	value, err = p.askNumber("Enter the current total worth of the investment: ")
	if err != nil {
		return 0, 0, err
	}
	commission, err = p.askNumber("Current investment's annual commission rate (as a decimal, e.g., 0.01 for 1%): ")
	if err != nil {
		return 0, 0, err
	}
	return value, commission, nil
}

// ConfirmYield shows the calculated annual yield and returns an override when
// the user declines it.
func (p *Prompter) ConfirmYield(annual float64) (*float64, error) {
	p.printf("Calculated annual yield: %s%%\n", decimal.NewFromFloat(annual).Shift(2).StringFixed(2))
	answer, err := p.ask("Do you want to use this calculated annual yield for comparison? (y/n): ")
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(answer, "y") {
		return nil, nil
	}
	v, err := p.askNumber("Enter the annual yield to use for comparison (as a decimal, e.g., 0.05 for 5%): ")
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// NewInvestment holds the answers of the new-investment form.
type NewInvestment struct {
	Yield          float64
	Commission     float64
	TransactionFee float64
	Years          int
}

type question struct {
	label  string
	prompt string
	isInt  bool
}

var newInvestmentQuestions = []question{
	{"Expected annual yield", "New investment's expected annual yield (as a decimal, e.g., 0.08 for 8%): ", false},
	{"Annual commission rate", "New investment's annual commission rate (as a decimal, e.g., 0.015 for 1.5%): ", false},
	{"Transaction fee rate", "New investment's transaction fee rate (as a decimal, e.g., 0.001 for 0.1%): ", false},
	{"Years to project", "Number of years to project for comparison: ", true},
}

// NewInvestmentDetails runs the new-investment form. Typing undo discards the
// previous answer and asks that question again.
func (p *Prompter) NewInvestmentDetails() (NewInvestment, error) {
	p.printf("\nPlease enter details for the potential new investment:\n")
	p.printf("(Type 'undo' at any prompt to remove the last entered detail)\n")

	answers := make([]float64, 0, len(newInvestmentQuestions))
	for len(answers) < len(newInvestmentQuestions) {
		q := newInvestmentQuestions[len(answers)]
		answer, err := p.ask(q.prompt)
		if err != nil {
			return NewInvestment{}, err
		}
		if strings.EqualFold(answer, "undo") {
			if len(answers) == 0 {
				p.printf("Nothing to undo.\n")
				continue
			}
			last := len(answers) - 1
			p.printf("Removed: %s = %s\n", newInvestmentQuestions[last].label, formatAnswer(answers[last], newInvestmentQuestions[last].isInt))
			answers = answers[:last]
			continue
		}

		if q.isInt {
			n, err := strconv.Atoi(answer)
			if err != nil || n < 0 {
				p.printf("Invalid input. Please enter a valid number.\n")
				continue
			}
			if n > calculator.MaxProjectionYears {
				p.printf("Invalid input. Please enter at most %d years.\n", calculator.MaxProjectionYears)
				continue
			}
			answers = append(answers, float64(n))
			continue
		}
		v, err := parseNumber(answer)
		if err != nil {
			p.printf("Invalid input. Please enter a valid number.\n")
			continue
		}
		answers = append(answers, v)
	}

	p.printf("\nNew investment details summary:\n")
	for i, q := range newInvestmentQuestions {
		p.printf("%s: %s\n", q.label, formatAnswer(answers[i], q.isInt))
	}
	return NewInvestment{
		Yield:          answers[0],
		Commission:     answers[1],
		TransactionFee: answers[2],
		Years:          int(answers[3]),
	}, nil
}

// ReinvestShare asks which share of the post-tax capital moves. An empty answer means all of it.
func (p *Prompter) ReinvestShare() (float64, error) {
	for {
		answer, err := p.ask("Share of the post-tax capital to move (0-1, Enter for all): ")
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 1, nil
		}
		v, err := parseNumber(answer)
		if err != nil || v <= 0 || v > 1 {
			p.printf("Invalid input. Please enter a number greater than 0 and at most 1.\n")
			continue
		}
		return v, nil
	}
}

// Pause waits for Enter. A closed input ends the wait too.
func (p *Prompter) Pause(message string) {
	_, _ = p.ask(message)
}

func formatAnswer(v float64, isInt bool) string {
	if isInt {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
