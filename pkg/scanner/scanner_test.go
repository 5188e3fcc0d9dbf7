package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvelez/iamscan/internal/models"
)

// fakeAccount is a synthetic AccountScanner returning fixed rows or an error.
type fakeAccount struct {
	rows []models.ReportRow
	err  error
}

func (f *fakeAccount) ScanAccount(ctx context.Context) ([]models.ReportRow, error) {
	return f.rows, f.err
}

func rowsFor(account string, n int) []models.ReportRow {
	rows := make([]models.ReportRow, n)
	for i := range rows {
		rows[i] = models.ReportRow{Account: account}
	}
	return rows
}

func TestRunEmptyProfileListUsesDefault(t *testing.T) {
	var mu sync.Mutex
	var scanned []string

	s := New(func(ctx context.Context, profile string) (AccountScanner, error) {
		mu.Lock()
		scanned = append(scanned, profile)
		mu.Unlock()
		return &fakeAccount{}, nil
	})

	results := s.Run(context.Background(), nil)

	require.Len(t, results, 1)
	assert.Equal(t, []string{""}, scanned)
	assert.Equal(t, "Default", results[0].Label())
}

func TestRunFailedProfileDoesNotAbortOthers(t *testing.T) {
	s := New(func(ctx context.Context, profile string) (AccountScanner, error) {
		if profile == "a" {
			return nil, errors.New("InvalidClientTokenId: credentials invalid")
		}
		return &fakeAccount{rows: rowsFor("b", 3)}, nil
	})

	results := s.Run(context.Background(), []string{"a", "b"})

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.Empty(t, results[0].Rows)
	assert.NoError(t, results[1].Err)

	rows := Combine(results)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, "b", row.Account)
	}
}

func TestRunPreservesSuppliedOrder(t *testing.T) {
	profiles := []string{"prod", "dev", "staging"}

	s := New(func(ctx context.Context, profile string) (AccountScanner, error) {
		return &fakeAccount{rows: rowsFor(profile, 1)}, nil
	})

	results := s.Run(context.Background(), profiles)

	require.Len(t, results, len(profiles))
	for i, profile := range profiles {
		assert.Equal(t, profile, results[i].Profile)
		require.Len(t, results[i].Rows, 1)
		assert.Equal(t, profile, results[i].Rows[0].Account)
	}
}

func TestRunScanErrorRecorded(t *testing.T) {
	s := New(func(ctx context.Context, profile string) (AccountScanner, error) {
		return &fakeAccount{err: errors.New("AccessDenied")}, nil
	})

	results := s.Run(context.Background(), []string{"dev"})

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestCombineSkipsFailedResults(t *testing.T) {
	results := []models.AccountResult{
		{Profile: "a", Rows: rowsFor("a", 2)},
		{Profile: "b", Rows: rowsFor("b", 1), Err: errors.New("partial rows must not leak")},
		{Profile: "c", Rows: rowsFor("c", 1)},
	}

	rows := Combine(results)

	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].Account)
	assert.Equal(t, "a", rows[1].Account)
	assert.Equal(t, "c", rows[2].Account)
}
