package ledger

import (
	"fmt"
	"math"
	"sync"

	"ReinvestAnalyzer/internal/model"

	"github.com/sirupsen/logrus"
)

// Manager edits the deposit ledger and persists every change.
type Manager struct {
	mu       sync.Mutex
	state    *model.LedgerState
	filePath string
	log      *logrus.Logger
}

// NewManager creates a Manager, loading existing state from disk.
func NewManager(filePath string, log *logrus.Logger) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": filePath, "deposits": len(state.Deposits)}).Debug("ledger loaded")
	return &Manager{state: state, filePath: filePath, log: log}, nil
}

// Add records the total deposited in year, replacing any previous amount for that year.
func (m *Manager) Add(year int, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("invalid deposit amount %v", amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.draft()
	next.Deposits[year] = amount
	if err := m.commit(next); err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{"year": year, "amount": amount}).Info("deposit recorded")
	return nil
}

// Undo removes the deposit with the latest year. ok is false when the ledger is empty.
func (m *Manager) Undo() (year int, amount float64, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, last, ok := m.state.Deposits.Span()
	if !ok {
		return 0, 0, false, nil
	}
	amount = m.state.Deposits[last]
	next := m.draft()
	delete(next.Deposits, last)
	if err := m.commit(next); err != nil {
		return 0, 0, false, err
	}
	m.log.WithField("year", last).Info("deposit removed")
	return last, amount, true, nil
}

// Reset clears all deposits but keeps the scenario.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.draft()
	next.Deposits = model.Ledger{}
	return m.commit(next)
}

// Deposits returns a snapshot of the ledger.
func (m *Manager) Deposits() model.Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Deposits.Clone()
}

// Scenario returns the last saved scenario.
func (m *Manager) Scenario() model.Scenario {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Scenario
}

// SetScenario stores the scenario used by the next analyses.
func (m *Manager) SetScenario(sc model.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.draft()
	next.Scenario = sc
	return m.commit(next)
}

// GetState returns a copy of the current state.
func (m *Manager) GetState() model.LedgerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.draft()
}

// draft returns a copy of the state that can be edited without touching m.state.
// Callers hold m.mu.
func (m *Manager) draft() *model.LedgerState {
	next := *m.state
	next.Deposits = m.state.Deposits.Clone()
	return &next
}

// commit persists next and only then makes it the current state.
func (m *Manager) commit(next *model.LedgerState) error {
	if err := SaveState(m.filePath, next); err != nil {
		m.log.WithError(err).Error("failed to save ledger state")
		return err
	}
	m.state = next
	return nil
}
