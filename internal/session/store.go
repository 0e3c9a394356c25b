// Package session manages the local account registry and the single active
// session, persisted through an injected key-value store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"exptrack/internal/core"
	"exptrack/internal/kv"
	"exptrack/internal/log"

	"golang.org/x/crypto/bcrypt"
)

// Store owns account registration, credential verification, and session
// activation. At most one account is active per process.
type Store struct {
	kv     kv.Store
	logger *log.Logger
	active *core.Account
	now    func() time.Time
}

func NewStore(store kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{
		kv:     store,
		logger: logger.WithComponent("session"),
		now:    time.Now,
	}
}

// Resume restores the active session persisted by a previous run, if any.
// It returns nil without error when no session is stored.
func (s *Store) Resume(ctx context.Context) (*core.Account, error) {
	raw, err := s.kv.Get(ctx, kv.ActiveSessionKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}

	var acct core.Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		return nil, fmt.Errorf("decode active session: %w", err)
	}
	s.active = &acct
	s.logger.Debug("session resumed", "email", acct.Email)
	return s.active, nil
}

// Register creates a new account and activates a session for it.
func (s *Store) Register(ctx context.Context, displayName, email, password, confirm string) (*core.Account, error) {
	if password != confirm {
		return nil, core.ErrPasswordMismatch
	}
	if len(password) < core.MinPasswordLength {
		return nil, core.ErrPasswordTooShort
	}

	normalized := core.NormalizeEmail(email)
	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := registry[normalized]; exists {
		return nil, core.ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := core.Account{
		Email:          normalized,
		DisplayName:    displayName,
		CredentialHash: string(hash),
		CreatedAt:      s.now().UTC(),
		Expenses:       []core.Expense{},
	}
	registry[normalized] = acct
	if err := s.saveRegistry(ctx, registry); err != nil {
		return nil, err
	}
	if err := s.activate(ctx, acct); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", "email", normalized)
	return s.active, nil
}

// Login verifies credentials and activates a session for the account.
func (s *Store) Login(ctx context.Context, email, password string) (*core.Account, error) {
	normalized := core.NormalizeEmail(email)
	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	acct, ok := registry[normalized]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.CredentialHash), []byte(password)) != nil {
		return nil, core.ErrInvalidCredential
	}
	if err := s.activate(ctx, acct); err != nil {
		return nil, err
	}

	s.logger.Info("login", "email", normalized)
	return s.active, nil
}

// Logout flushes the active account's expenses and clears the session.
// Idempotent when no session is active.
func (s *Store) Logout(ctx context.Context) error {
	if s.active != nil {
		if err := s.PersistExpenses(ctx, s.active.Email, s.active.Expenses); err != nil {
			return err
		}
		s.logger.Info("logout", "email", s.active.Email)
	}
	s.active = nil
	if err := s.kv.Delete(ctx, kv.ActiveSessionKey); err != nil {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// Current returns the active account, or nil when logged out. Pure lookup.
func (s *Store) Current() *core.Account {
	return s.active
}

// PersistExpenses writes records into the stored account keyed by email.
// A no-op when that account no longer exists in the registry.
func (s *Store) PersistExpenses(ctx context.Context, email string, records []core.Expense) error {
	normalized := core.NormalizeEmail(email)
	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return err
	}
	acct, ok := registry[normalized]
	if !ok {
		s.logger.Warn("persist skipped, account gone", "email", normalized)
		return nil
	}

	acct.Expenses = append([]core.Expense(nil), records...)
	registry[normalized] = acct
	if err := s.saveRegistry(ctx, registry); err != nil {
		return err
	}

	// Keep the denormalized session copy in step with the registry.
	if s.active != nil && s.active.Email == normalized {
		s.active.Expenses = acct.Expenses
		if err := s.writeActive(ctx, *s.active); err != nil {
			return err
		}
	}

	s.logger.Debug("expenses persisted", "email", normalized, "count", len(records))
	return nil
}

func (s *Store) activate(ctx context.Context, acct core.Account) error {
	if err := s.writeActive(ctx, acct); err != nil {
		return err
	}
	s.active = &acct
	return nil
}

func (s *Store) writeActive(ctx context.Context, acct core.Account) error {
	raw, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encode active session: %w", err)
	}
	if err := s.kv.Set(ctx, kv.ActiveSessionKey, raw); err != nil {
		return fmt.Errorf("store active session: %w", err)
	}
	return nil
}

func (s *Store) loadRegistry(ctx context.Context) (map[string]core.Account, error) {
	raw, err := s.kv.Get(ctx, kv.AccountsKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return map[string]core.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load accounts registry: %w", err)
	}

	var registry map[string]core.Account
	if err := json.Unmarshal(raw, &registry); err != nil {
		return nil, fmt.Errorf("decode accounts registry: %w", err)
	}
	if registry == nil {
		registry = map[string]core.Account{}
	}
	return registry, nil
}

func (s *Store) saveRegistry(ctx context.Context, registry map[string]core.Account) error {
	raw, err := json.Marshal(registry)
	if err != nil {
		return fmt.Errorf("encode accounts registry: %w", err)
	}
	if err := s.kv.Set(ctx, kv.AccountsKey, raw); err != nil {
		return fmt.Errorf("store accounts registry: %w", err)
	}
	return nil
}
