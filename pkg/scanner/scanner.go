package scanner

import (
	"context"
	"sync"

	"github.com/rvelez/iamscan/internal/models"
)

// AccountScanner scans a single account's identity store.
type AccountScanner interface {
	ScanAccount(ctx context.Context) ([]models.ReportRow, error)
}

// ClientFactory builds the AccountScanner for one profile. A construction
// failure (unknown profile, unresolvable credentials) counts as that
// profile's scan failure.
type ClientFactory func(ctx context.Context, profile string) (AccountScanner, error)

// Scanner fans one scan out per profile and collects the per-account results.
type Scanner struct {
	newClient ClientFactory
}

// New returns a Scanner using the given client factory.
func New(newClient ClientFactory) *Scanner {
	return &Scanner{newClient: newClient}
}

// Run scans every profile and returns one result per profile, in the order
// the profiles were supplied. An empty profile list falls back to a single
// scan with the default credential chain. Accounts are scanned in parallel,
// one goroutine per account; within an account all calls stay sequential. A
// failing profile yields an error result and never aborts the others.
func (s *Scanner) Run(ctx context.Context, profiles []string) []models.AccountResult {
	if len(profiles) == 0 {
		profiles = []string{""}
	}

	results := make([]models.AccountResult, len(profiles))

	var wg sync.WaitGroup
	for i, profile := range profiles {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			results[idx].Profile = p

			client, err := s.newClient(ctx, p)
			if err != nil {
				results[idx].Err = err
				return
			}

			rows, err := client.ScanAccount(ctx)
			results[idx].Rows = rows
			results[idx].Err = err
		}(i, profile)
	}

	wg.Wait()

	return results
}

// Combine concatenates the rows of every successful result.
func Combine(results []models.AccountResult) []models.ReportRow {
	var rows []models.ReportRow
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		rows = append(rows, result.Rows...)
	}
	return rows
}
