package models

import (
	"fmt"
	"sort"
	"time"
)

// bookedDateLayout is the canonical booking date format used across all banks.
const bookedDateLayout = "02.01.2006"

// Registry owns all transactions of one extraction run and hands out
// sequential ids. It is not safe for concurrent use; the pipeline that
// fills it is sequential.
type Registry struct {
	transactions []*Transaction
	nextID       int
}

// NewRegistry returns an empty registry whose first allocated id is 1.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Add registers a transaction. A zero id gets the next sequential id;
// a non-zero id (a reloaded transaction) is kept and the allocator is
// bumped past it, so later additions never collide.
func (r *Registry) Add(t *Transaction) {
	if t.ID == 0 {
		t.ID = r.nextID
		r.nextID++
	} else if t.ID >= r.nextID {
		r.nextID = t.ID + 1
	}
	r.transactions = append(r.transactions, t)
}

// All returns the backing slice. Callers must not reorder it themselves;
// use SortChronologically.
func (r *Registry) All() []*Transaction {
	return r.transactions
}

// Len returns the number of registered transactions.
func (r *Registry) Len() int {
	return len(r.transactions)
}

// SortChronologically orders transactions by booking date ascending,
// breaking ties by the original creation id. Returns an error when any
// booking date does not parse as dd.mm.yyyy.
func (r *Registry) SortChronologically() error {
	type keyed struct {
		tx   *Transaction
		when time.Time
	}
	keys := make([]keyed, len(r.transactions))
	for i, tx := range r.transactions {
		when, err := time.Parse(bookedDateLayout, tx.DateBooked)
		if err != nil {
			return fmt.Errorf("transaction %d: unparseable booking date %q: %w", tx.ID, tx.DateBooked, err)
		}
		keys[i] = keyed{tx: tx, when: when}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if !keys[i].when.Equal(keys[j].when) {
			return keys[i].when.Before(keys[j].when)
		}
		return keys[i].tx.ID < keys[j].tx.ID
	})
	for i := range keys {
		r.transactions[i] = keys[i].tx
	}
	return nil
}

// Renumber reassigns ids 1..N in the current order. Call after
// SortChronologically so ids follow the ledger order.
func (r *Registry) Renumber() {
	for i, tx := range r.transactions {
		tx.ID = i + 1
	}
	r.nextID = len(r.transactions) + 1
}
