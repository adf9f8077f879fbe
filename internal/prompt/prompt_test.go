package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"ReinvestAnalyzer/internal/model"
)

type memStore struct{ l model.Ledger }

func (m *memStore) Add(year int, amount float64) error {
	m.l[year] = amount
	return nil
}

func (m *memStore) Undo() (int, float64, bool, error) {
	_, last, ok := m.l.Span()
	if !ok {
		return 0, 0, false, nil
	}
	a := m.l[last]
	delete(m.l, last)
	return last, a, true, nil
}

func (m *memStore) Deposits() model.Ledger { return m.l.Clone() }

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestDeposits_Loop(t *testing.T) {
	in := script(
		"done", // refused, empty ledger
		"undo", // nothing to undo
		"2019", "1000",
		"abc", // bad year
		"2020", "x",
		"2021", "500",
		"2020", "700",
		"undo", // removes 2021
		"help",
		"DONE",
	)
	var out bytes.Buffer
	store := &memStore{l: model.Ledger{}}

	if err := New(in, &out).Deposits(store); err != nil {
		t.Fatalf("Deposits: %v", err)
	}
	want := model.Ledger{2019: 1000, 2020: 700}
	if len(store.l) != len(want) || store.l[2019] != 1000 || store.l[2020] != 700 {
		t.Errorf("ledger = %v, want %v", store.l, want)
	}

	text := out.String()
	for _, s := range []string{
		"You must enter at least one deposit before proceeding.",
		"No deposits to undo.",
		"Added deposit of 1000.00 for year 2019",
		"Invalid input. Please enter a valid year and deposit amount.",
		"Removed deposit for year 2021",
	} {
		if !strings.Contains(text, s) {
			t.Errorf("output missing %q", s)
		}
	}
	if strings.Count(text, "Instructions:") != 2 {
		t.Errorf("expected instructions twice, got %d", strings.Count(text, "Instructions:"))
	}
}

func TestDeposits_InputClosed(t *testing.T) {
	err := New(script("2020", "100"), &bytes.Buffer{}).Deposits(&memStore{l: model.Ledger{}})
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("err = %v, want ErrInputClosed", err)
	}
}

func TestCurrentDetails_Reprompts(t *testing.T) {
	var out bytes.Buffer
	v, c, err := New(script("lots", "30000", "0.005"), &out).CurrentDetails()
	if err != nil {
		t.Fatalf("CurrentDetails: %v", err)
	}
	if v != 30000 || c != 0.005 {
		t.Errorf("got %v, %v", v, c)
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Error("expected re-prompt message")
	}
}

func TestConfirmYield(t *testing.T) {
	tests := []struct {
		name  string
		input *strings.Reader
		want  *float64
	}{
		{"accept", script("Y"), nil},
		{"override", script("n", "0.04"), ptr(0.04)},
		{"anything else overrides", script("", "0.03"), ptr(0.03)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := New(tt.input, &out).ConfirmYield(0.0699131939)
			if err != nil {
				t.Fatalf("ConfirmYield: %v", err)
			}
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "6.99%") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestNewInvestmentDetails_Undo(t *testing.T) {
	in := script(
		"undo", // nothing to undo
		"0.08",
		"0.015",
		"undo", // drops 0.015 and asks again
		"0.002",
		"bad",
		"0.001",
		"10.5", // years must be an integer
		"15",
	)
	var out bytes.Buffer
	got, err := New(in, &out).NewInvestmentDetails()
	if err != nil {
		t.Fatalf("NewInvestmentDetails: %v", err)
	}
	want := NewInvestment{Yield: 0.08, Commission: 0.002, TransactionFee: 0.001, Years: 15}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	text := out.String()
	for _, s := range []string{"Nothing to undo.", "Removed: Annual commission rate = 0.015", "Years to project: 15"} {
		if !strings.Contains(text, s) {
			t.Errorf("output missing %q", s)
		}
	}
}

func TestNewInvestmentDetails_YearsBound(t *testing.T) {
	in := script("0.08", "0.015", "0.001", "9223372036854775807", "1001", "1000")
	var out bytes.Buffer
	got, err := New(in, &out).NewInvestmentDetails()
	if err != nil {
		t.Fatalf("NewInvestmentDetails: %v", err)
	}
	if got.Years != 1000 {
		t.Errorf("years = %d, want 1000", got.Years)
	}
	if n := strings.Count(out.String(), "at most 1000 years"); n != 2 {
		t.Errorf("expected 2 bound messages, got %d", n)
	}
}

func TestReinvestShare(t *testing.T) {
	share, err := New(script(""), &bytes.Buffer{}).ReinvestShare()
	if err != nil || share != 1 {
		t.Fatalf("default share = %v, %v", share, err)
	}
	share, err = New(script("1.5", "0", "0.4"), &bytes.Buffer{}).ReinvestShare()
	if err != nil || share != 0.4 {
		t.Fatalf("share = %v, %v", share, err)
	}
}

func ptr(v float64) *float64 { return &v }
