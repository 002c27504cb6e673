package memory

import (
	"context"
	"sync"

	"foodgateway/storage"
)

type account struct {
	mu      sync.Mutex
	balance float64
}

type ledgerRepo struct {
	mu       sync.RWMutex
	accounts map[string]*account
}

func NewLedgerRepo(seed map[string]float64) storage.ILedgerStorage {
	r := &ledgerRepo{accounts: make(map[string]*account, len(seed))}
	for id, balance := range seed {
		r.accounts[id] = &account{balance: balance}
	}
	return r
}

func (r *ledgerRepo) account(id string) *account {
	if a, ok := r.lookup(id); ok {
		return a
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		a = &account{}
		r.accounts[id] = a
	}
	return a
}

func (r *ledgerRepo) lookup(id string) (*account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	return a, ok
}

// Update applies fn to the account balance. Unknown accounts read as zero and
// are only stored once fn commits a balance for them.
func (r *ledgerRepo) Update(ctx context.Context, accountID string, fn storage.LedgerUpdate) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	a, ok := r.lookup(accountID)
	if !ok {
		r.mu.Lock()
		if a, ok = r.accounts[accountID]; !ok {
			defer r.mu.Unlock()
			next, commit := fn(0)
			if !commit {
				return 0, nil
			}
			r.accounts[accountID] = &account{balance: next}
			return next, nil
		}
		r.mu.Unlock()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if next, commit := fn(a.balance); commit {
		a.balance = next
	}
	return a.balance, nil
}

func (r *ledgerRepo) Balance(ctx context.Context, accountID string) (float64, error) {
	a, ok := r.lookup(accountID)
	if !ok {
		return 0, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance, nil
}

func (r *ledgerRepo) Set(ctx context.Context, accountID string, balance float64) error {
	a := r.account(accountID)
	a.mu.Lock()
	a.balance = balance
	a.mu.Unlock()
	return nil
}
