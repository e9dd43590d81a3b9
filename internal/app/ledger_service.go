package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"familyfit/internal/domain"
	"familyfit/internal/metrics"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mocks_test.go -package=app_test familyfit/internal/domain KVStore

// ErrPersist matches every failed ledger write.
var ErrPersist = errors.New("ledger not persisted")

// PersistError is returned alongside a successful mutation whose write to
// the store failed. The in-memory ledger still holds the change.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist ledger: %s", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Is makes PersistError match ErrPersist.
func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}

// IsWarning reports whether err only signals a failed write after a
// mutation that did take effect.
func IsWarning(err error) bool {
	return errors.Is(err, ErrPersist)
}

// MemberSummary is the per-member dashboard header.
type MemberSummary struct {
	domain.Member
	Latest   float64 `json:"latest"`
	Progress float64 `json:"progress"`
	Entries  int     `json:"entries"`
}

// LedgerService owns the application's ledger: it loads it from the store
// once, applies mutations and writes the whole ledger back after each one.
type LedgerService struct {
	mu      sync.Mutex
	store   domain.KVStore
	roster  *domain.Roster
	ledger  *domain.Ledger
	metrics *metrics.Manager
}

// NewLedgerService creates a LedgerService with an empty ledger. Call Load to
// restore persisted state.
func NewLedgerService(store domain.KVStore, roster *domain.Roster, m *metrics.Manager) *LedgerService {
	return &LedgerService{
		store:   store,
		roster:  roster,
		ledger:  domain.NewLedger(roster),
		metrics: m,
	}
}

// Roster returns the member reference table.
func (s *LedgerService) Roster() *domain.Roster {
	return s.roster
}

// Load replaces the in-memory ledger with the persisted one. A missing,
// unreadable or malformed blob leaves an empty ledger.
func (s *LedgerService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = domain.NewLedger(s.roster)
	defer s.observeEntries()

	raw, ok, err := s.store.Get(ctx, domain.LedgerKey)
	if err != nil {
		log.Warnf("load ledger: %s, starting empty", err)
		return
	}
	if !ok {
		log.Debugln("no persisted ledger, starting empty")
		return
	}

	ledger, skipped, err := domain.DecodeLedger(s.roster, []byte(raw))
	if err != nil {
		log.Warnf("load ledger: %s, starting empty", err)
		return
	}
	if skipped > 0 {
		log.Warnf("load ledger: skipped %d invalid entries", skipped)
	}
	s.ledger = ledger
	log.Debugf("loaded ledger with %d entries", ledger.Len())
}

// AddEntry validates and records a weight entry, then persists the ledger.
// Validation errors leave the ledger and the store untouched. A failed write
// returns the new entry together with a *PersistError.
func (s *LedgerService) AddEntry(ctx context.Context, member, date string, weight float64) (domain.WeightEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.ledger.Add(member, date, weight)
	if err != nil {
		return domain.WeightEntry{}, err
	}
	log.Debugf("added entry %d for %s: %s %.2f", entry.ID, member, entry.Date, entry.Weight)
	s.countOp("add", member)

	return entry, s.persistLocked(ctx)
}

// DeleteEntry removes an entry by id. Deleting an absent id is a no-op and
// does not touch the store.
func (s *LedgerService) DeleteEntry(ctx context.Context, member string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.ledger.Delete(member, id)
	if err != nil || !deleted {
		return false, err
	}
	log.Debugf("deleted entry %d for %s", id, member)
	s.countOp("delete", member)

	return true, s.persistLocked(ctx)
}

// Persist writes the current ledger to the store.
func (s *LedgerService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *LedgerService) persistLocked(ctx context.Context) error {
	s.observeEntries()

	data, err := json.Marshal(s.ledger)
	if err != nil {
		return s.persistFailed(err)
	}
	if err := s.store.Set(ctx, domain.LedgerKey, string(data)); err != nil {
		return s.persistFailed(err)
	}
	return nil
}

func (s *LedgerService) persistFailed(err error) error {
	log.Warnf("persist ledger: %s", err)
	if s.metrics != nil {
		s.metrics.CounterPersistFailures.Inc()
	}
	return &PersistError{Err: err}
}

// LatestWeight returns the member's most recent weight, or the starting
// weight when nothing was recorded.
func (s *LedgerService) LatestWeight(member string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Latest(member)
}

// Progress returns the member's goal progress in [0, 100].
func (s *LedgerService) Progress(member string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Progress(member)
}

// History returns the member's entries in date order.
func (s *LedgerService) History(member string) ([]domain.WeightEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.History(member)
}

// ChartSeries returns the merged per-date table across all members.
func (s *LedgerService) ChartSeries() []domain.ChartRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ChartSeries()
}

// Summaries returns every member with its latest weight and progress, in
// roster order.
func (s *LedgerService) Summaries() []MemberSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.roster.Members()
	out := make([]MemberSummary, 0, len(members))
	for _, m := range members {
		// roster members never fail these lookups
		latest, _ := s.ledger.Latest(m.Key)
		progress, _ := s.ledger.Progress(m.Key)
		history, _ := s.ledger.History(m.Key)
		out = append(out, MemberSummary{
			Member:   m,
			Latest:   latest,
			Progress: progress,
			Entries:  len(history),
		})
	}
	return out
}

func (s *LedgerService) countOp(op, member string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterLedgerOps.WithLabelValues(op, member).Inc()
}

func (s *LedgerService) observeEntries() {
	if s.metrics == nil {
		return
	}
	s.metrics.GaugeEntries.Set(float64(s.ledger.Len()))
}
