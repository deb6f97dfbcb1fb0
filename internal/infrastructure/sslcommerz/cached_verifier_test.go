package sslcommerz

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
)

type fakeCache struct {
	store    map[string]string
	setCalls int
	setErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.store[key] = value.(string)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return c.store[key], nil
}

func (c *fakeCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("test:%s:%s", operation, key)
}

type scriptedVerifier struct {
	verdict   *domain.Verdict
	err       error
	callCount int
}

func (v *scriptedVerifier) Validate(ctx context.Context, valID string) (*domain.Verdict, error) {
	v.callCount++
	if v.err != nil {
		return nil, v.err
	}
	return v.verdict, nil
}

func TestCachedVerifierSkipsValidatorOnHit(t *testing.T) {
	next := &scriptedVerifier{verdict: &domain.Verdict{
		Valid:    true,
		Status:   "VALID",
		TranID:   "TRN_ABC123",
		Amount:   500,
		Currency: "BDT",
	}}
	v := NewCachedVerifier(next, newFakeCache(), time.Minute)

	first, err := v.Validate(context.Background(), "val_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := v.Validate(context.Background(), "val_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.callCount != 1 {
		t.Errorf("validator called %d times, want 1", next.callCount)
	}
	if second.TranID != first.TranID || second.Valid != first.Valid || second.Amount != first.Amount {
		t.Errorf("cached verdict %+v does not match original %+v", second, first)
	}
}

func TestCachedVerifierCachesInvalidVerdicts(t *testing.T) {
	next := &scriptedVerifier{verdict: &domain.Verdict{Valid: false, Status: "INVALID_TRANSACTION"}}
	v := NewCachedVerifier(next, newFakeCache(), time.Minute)

	v.Validate(context.Background(), "val_1")
	verdict, err := v.Validate(context.Background(), "val_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.callCount != 1 {
		t.Errorf("validator called %d times, want 1", next.callCount)
	}
	if verdict.Valid {
		t.Error("cached verdict must stay invalid")
	}
}

func TestCachedVerifierDoesNotCacheIndeterminate(t *testing.T) {
	next := &scriptedVerifier{err: fmt.Errorf("%w: connection refused", domain.ErrVerificationIndeterminate)}
	c := newFakeCache()
	v := NewCachedVerifier(next, c, time.Minute)

	if _, err := v.Validate(context.Background(), "val_1"); err == nil {
		t.Fatal("expected indeterminate error")
	}
	if c.setCalls != 0 {
		t.Error("indeterminate result must not be cached")
	}

	next.err = nil
	next.verdict = &domain.Verdict{Valid: true, Status: "VALID", TranID: "TRN_ABC123"}
	verdict, err := v.Validate(context.Background(), "val_1")
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if !verdict.Valid {
		t.Error("retry after indeterminate must reach the validator")
	}
	if next.callCount != 2 {
		t.Errorf("validator called %d times, want 2", next.callCount)
	}
}

func TestCachedVerifierToleratesCacheWriteFailure(t *testing.T) {
	next := &scriptedVerifier{verdict: &domain.Verdict{Valid: true, Status: "VALID", TranID: "TRN_ABC123"}}
	c := newFakeCache()
	c.setErr = fmt.Errorf("redis down")
	v := NewCachedVerifier(next, c, time.Minute)

	verdict, err := v.Validate(context.Background(), "val_1")
	if err != nil {
		t.Fatalf("cache write failures must not fail verification: %v", err)
	}
	if !verdict.Valid {
		t.Error("expected valid verdict")
	}
}
