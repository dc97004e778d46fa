// Package service implements the escrow state machine over a transaction ledger.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

// Dependencies groups the collaborators an EscrowService is built from.
type Dependencies struct {
	Ledger     Ledger
	Store      StateStore
	Vault      Vault
	Notifier   Notifier
	Authorizer Authorizer
	Metrics    EscrowMetrics
}

// EscrowService holds buyer deposits until completion, refund or an arbiter verdict.
// Mutating calls are serialized; read-only calls share a read lock.
type EscrowService struct {
	mu sync.RWMutex

	ledger   Ledger
	store    StateStore
	vault    Vault
	notifier Notifier
	auth     Authorizer
	metrics  EscrowMetrics
	logger   *zap.Logger

	owner    model.Account
	state    model.ServiceState
	eventSeq uint64
	// epoch counts write-lock acquisitions; audits use it to detect concurrent writes.
	epoch uint64

	now   func() time.Time
	newID func() uuid.UUID
}

// NewEscrowService loads the persisted service state, initializing it from defaults on first start.
func NewEscrowService(
	ctx context.Context,
	owner model.Account,
	defaults model.Config,
	deps Dependencies,
	logger *zap.Logger,
) (*EscrowService, error) {
	if owner == "" {
		return nil, errors.New("escrow owner is required")
	}
	if deps.Ledger == nil {
		return nil, errors.New("escrow ledger is required")
	}
	if deps.Store == nil {
		return nil, errors.New("escrow state store is required")
	}
	if deps.Vault == nil {
		return nil, errors.New("escrow vault is required")
	}
	if deps.Metrics == nil {
		return nil, errors.New("escrow metrics is required")
	}
	if deps.Notifier == nil {
		deps.Notifier = noopNotifier{}
	}
	if deps.Authorizer == nil {
		deps.Authorizer = OwnerAuthorizer{}
	}

	state, found, err := deps.Store.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load service state: %w", err)
	}
	if !found {
		state = model.ServiceState{Config: defaults}
		if err := deps.Store.SaveState(ctx, state); err != nil {
			return nil, fmt.Errorf("initialize service state: %w", err)
		}
	}

	logger = logger.With(zap.String("owner", string(owner)))
	logger.Info("escrow service ready",
		zap.Duration("escrow_duration", state.Config.EscrowDuration),
		zap.Stringer("escrow_fee", btcutil.Amount(state.Config.EscrowFee)),
		zap.Stringer("fee_balance", btcutil.Amount(state.FeeBalance)),
		zap.Bool("restored", found))

	return &EscrowService{
		ledger:   deps.Ledger,
		store:    deps.Store,
		vault:    deps.Vault,
		notifier: deps.Notifier,
		auth:     deps.Authorizer,
		metrics:  deps.Metrics,
		logger:   logger,
		owner:    owner,
		state:    state,
		now:      time.Now,
		newID:    uuid.New,
	}, nil
}

// Owner returns the arbiter identity.
func (s *EscrowService) Owner() model.Account {
	return s.owner
}

// Config returns the current fee and duration settings.
func (s *EscrowService) Config() model.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Config
}

// FeeBalance returns the fees accumulated since the last withdrawal.
func (s *EscrowService) FeeBalance() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FeeBalance
}

// Create records a new escrow funded by caller. The fee stays in custody until withdrawn.
func (s *EscrowService) Create(
	ctx context.Context,
	caller model.Account,
	seller model.Account,
	encryptedItemMetadata string,
	itemHash chainhash.Hash,
	deposit uint64,
) (id uint64, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("create", err, started)
	}()

	s.lockWrite()
	defer s.mu.Unlock()

	if caller == "" {
		return 0, fmt.Errorf("create escrow: anonymous caller: %w", ErrUnauthorized)
	}
	fee := s.state.Config.EscrowFee
	if deposit <= fee {
		return 0, fmt.Errorf("create escrow: deposit %d does not exceed fee %d: %w", deposit, fee, ErrInsufficientDeposit)
	}

	now := s.now()
	tx := model.Transaction{
		Buyer:                 caller,
		Seller:                seller,
		Amount:                deposit - fee,
		State:                 model.StateInProgress,
		EncryptedItemMetadata: encryptedItemMetadata,
		ItemHash:              itemHash,
		Revision:              1,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err = s.vault.Deposit(ctx, caller, deposit); err != nil {
		return 0, fmt.Errorf("create escrow: deposit from %q: %w", caller, err)
	}

	next := s.state
	next.FeeBalance += fee
	if err = s.store.SaveState(ctx, next); err != nil {
		s.returnDeposit(ctx, caller, deposit)
		return 0, fmt.Errorf("create escrow: save fee balance: %w", err)
	}

	id, err = s.ledger.InsertNext(ctx, tx)
	if err != nil {
		if restoreErr := s.store.SaveState(ctx, s.state); restoreErr != nil {
			s.logger.Error("restore service state after failed insert", zap.Error(restoreErr))
		}
		s.returnDeposit(ctx, caller, deposit)
		return 0, fmt.Errorf("create escrow: insert: %w", err)
	}
	s.state = next

	s.logger.Info("escrow created",
		zap.Uint64("id", id),
		zap.String("buyer", string(caller)),
		zap.String("seller", string(seller)),
		zap.Stringer("amount", btcutil.Amount(tx.Amount)),
		zap.Stringer("fee", btcutil.Amount(fee)))
	s.emit(ctx, model.Event{
		Type:          model.EventEscrowCreated,
		TransactionID: id,
		Buyer:         caller,
		Seller:        seller,
		Amount:        tx.Amount,
	})
	return id, nil
}

// Complete pays the escrowed amount to the seller. Either party may confirm.
func (s *EscrowService) Complete(ctx context.Context, caller model.Account, id uint64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("complete", err, started)
	}()

	s.lockWrite()
	defer s.mu.Unlock()

	tx, err := s.loadForParty(ctx, "complete", caller, id)
	if err != nil {
		return err
	}
	next := tx
	next.State = model.StateCompleted
	if err = s.transition(ctx, "complete", tx, next, tx.Seller); err != nil {
		return err
	}
	s.emit(ctx, model.Event{Type: model.EventEscrowCompleted, TransactionID: id})
	return nil
}

// Refund pays the escrowed amount back to the buyer. Either party may trigger it.
func (s *EscrowService) Refund(ctx context.Context, caller model.Account, id uint64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("refund", err, started)
	}()

	s.lockWrite()
	defer s.mu.Unlock()

	tx, err := s.loadForParty(ctx, "refund", caller, id)
	if err != nil {
		return err
	}
	next := tx
	next.State = model.StateRefunded
	if err = s.transition(ctx, "refund", tx, next, tx.Buyer); err != nil {
		return err
	}
	s.emit(ctx, model.Event{Type: model.EventEscrowRefunded, TransactionID: id})
	return nil
}

// Dispute hands the escrow over to the owner. No funds move.
func (s *EscrowService) Dispute(ctx context.Context, caller model.Account, id uint64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("dispute", err, started)
	}()

	s.lockWrite()
	defer s.mu.Unlock()

	tx, err := s.loadForParty(ctx, "dispute", caller, id)
	if err != nil {
		return err
	}
	next := tx
	next.State = model.StateDisputed
	if err = s.transition(ctx, "dispute", tx, next, ""); err != nil {
		return err
	}
	itemHash := tx.ItemHash
	s.emit(ctx, model.Event{Type: model.EventEscrowDisputed, TransactionID: id, ItemHash: &itemHash})
	return nil
}

// ResolveDispute records the owner's verdict: true pays the seller, false refunds the buyer.
func (s *EscrowService) ResolveDispute(ctx context.Context, caller model.Account, id uint64, isResolved bool) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("resolve_dispute", err, started)
	}()

	s.lockWrite()
	defer s.mu.Unlock()

	if err = s.auth.AuthorizeOwner(s.owner, caller); err != nil {
		return fmt.Errorf("resolve dispute %d: %w", id, err)
	}
	tx, err := s.load(ctx, "resolve dispute", id)
	if err != nil {
		return err
	}
	if tx.State != model.StateDisputed {
		return fmt.Errorf("resolve dispute %d: escrow is %s: %w", id, tx.State, ErrInvalidState)
	}

	next := tx
	next.DisputeResolved = isResolved
	payee := tx.Buyer
	next.State = model.StateRefunded
	if isResolved {
		payee = tx.Seller
		next.State = model.StateCompleted
	}
	if err = s.transition(ctx, "resolve dispute", tx, next, payee); err != nil {
		return err
	}
	s.emit(ctx, model.Event{
		Type:            model.EventEscrowDisputeResolved,
		TransactionID:   id,
		DisputeResolved: &isResolved,
	})
	return nil
}

// SetEscrowDuration overwrites the informational escrow window.
func (s *EscrowService) SetEscrowDuration(ctx context.Context, caller model.Account, duration time.Duration) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("set_escrow_duration", err, started)
	}()

	return s.updateConfig(ctx, "set escrow duration", caller, func(cfg *model.Config) {
		cfg.EscrowDuration = duration
	})
}

// SetEscrowFee overwrites the flat fee applied to future escrows.
func (s *EscrowService) SetEscrowFee(ctx context.Context, caller model.Account, fee uint64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("set_escrow_fee", err, started)
	}()

	return s.updateConfig(ctx, "set escrow fee", caller, func(cfg *model.Config) {
		cfg.EscrowFee = fee
	})
}

// WithdrawBalance sends all accumulated fees to the owner. Anyone may trigger it.
func (s *EscrowService) WithdrawBalance(ctx context.Context, caller model.Account) (amount uint64, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("withdraw_balance", err, started)
	}()

	s.lockWrite()
	defer s.mu.Unlock()

	amount = s.state.FeeBalance
	if amount == 0 {
		return 0, fmt.Errorf("withdraw balance: %w", ErrNothingToWithdraw)
	}

	next := s.state
	next.FeeBalance = 0
	if err = s.store.SaveState(ctx, next); err != nil {
		return 0, fmt.Errorf("withdraw balance: save state: %w", err)
	}
	if err = s.vault.Transfer(ctx, s.owner, amount); err != nil {
		if restoreErr := s.store.SaveState(ctx, s.state); restoreErr != nil {
			s.logger.Error("restore fee balance after failed transfer", zap.Error(restoreErr))
			return 0, errors.Join(fmt.Errorf("withdraw balance: transfer: %w", err), restoreErr)
		}
		return 0, fmt.Errorf("withdraw balance: transfer: %w", err)
	}
	s.state = next

	s.logger.Info("fee balance withdrawn",
		zap.String("caller", string(caller)),
		zap.Stringer("amount", btcutil.Amount(amount)))
	return amount, nil
}

// TransactionMetadata returns the buyer-supplied metadata blob, or "" for an unknown id.
func (s *EscrowService) TransactionMetadata(ctx context.Context, id uint64) (string, error) {
	tx, _, err := s.Transaction(ctx, id)
	if err != nil {
		return "", err
	}
	return tx.EncryptedItemMetadata, nil
}

// ItemHash returns the item content hash, or the zero hash for an unknown id.
func (s *EscrowService) ItemHash(ctx context.Context, id uint64) (chainhash.Hash, error) {
	tx, _, err := s.Transaction(ctx, id)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return tx.ItemHash, nil
}

// Transaction returns the stored record and whether it exists.
func (s *EscrowService) Transaction(ctx context.Context, id uint64) (model.Transaction, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, found, err := s.ledger.Get(ctx, id)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("get escrow %d: %w", id, err)
	}
	if !found {
		return model.Transaction{}, false, nil
	}
	return tx, true, nil
}

// TransactionCount returns the number of escrows ever created.
func (s *EscrowService) TransactionCount(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count, err := s.ledger.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count escrows: %w", err)
	}
	return count, nil
}

func (s *EscrowService) updateConfig(ctx context.Context, op string, caller model.Account, apply func(*model.Config)) error {
	s.lockWrite()
	defer s.mu.Unlock()

	if err := s.auth.AuthorizeOwner(s.owner, caller); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	next := s.state
	apply(&next.Config)
	if err := s.store.SaveState(ctx, next); err != nil {
		return fmt.Errorf("%s: save state: %w", op, err)
	}
	s.state = next

	s.logger.Info("escrow config updated",
		zap.String("operation", op),
		zap.Duration("escrow_duration", next.Config.EscrowDuration),
		zap.Stringer("escrow_fee", btcutil.Amount(next.Config.EscrowFee)))
	return nil
}

func (s *EscrowService) lockWrite() {
	s.mu.Lock()
	s.epoch++
}

func (s *EscrowService) load(ctx context.Context, op string, id uint64) (model.Transaction, error) {
	tx, found, err := s.ledger.Get(ctx, id)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%s %d: get: %w", op, id, err)
	}
	if !found {
		return model.Transaction{}, fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	}
	return tx, nil
}

// loadForParty applies the buyer-or-seller gate shared by complete, refund and dispute.
func (s *EscrowService) loadForParty(ctx context.Context, op string, caller model.Account, id uint64) (model.Transaction, error) {
	tx, err := s.load(ctx, op, id)
	if err != nil {
		return model.Transaction{}, err
	}
	if caller == "" || !tx.IsParty(caller) {
		return model.Transaction{}, fmt.Errorf("%s %d: caller %q is neither buyer nor seller: %w", op, id, caller, ErrUnauthorized)
	}
	if tx.State != model.StateInProgress {
		return model.Transaction{}, fmt.Errorf("%s %d: escrow is %s: %w", op, id, tx.State, ErrInvalidState)
	}
	return tx, nil
}

// transition writes next and pays payee when set. A failed payment writes prev back
// under a newer revision so the call leaves no trace.
func (s *EscrowService) transition(ctx context.Context, op string, prev, next model.Transaction, payee model.Account) error {
	if !prev.State.CanTransition(next.State) {
		return fmt.Errorf("%s %d: %s -> %s: %w", op, prev.ID, prev.State, next.State, ErrInvalidState)
	}
	next.Revision = prev.Revision + 1
	next.UpdatedAt = s.now()
	if err := s.ledger.Update(ctx, prev.ID, next); err != nil {
		return fmt.Errorf("%s %d: update: %w", op, prev.ID, err)
	}

	if payee != "" {
		if err := s.vault.Transfer(ctx, payee, next.Amount); err != nil {
			transferErr := fmt.Errorf("%s %d: transfer to %q: %w", op, prev.ID, payee, err)
			restore := prev
			restore.Revision = next.Revision + 1
			restore.UpdatedAt = next.UpdatedAt
			if restoreErr := s.ledger.Update(ctx, prev.ID, restore); restoreErr != nil {
				s.logger.Error("restore escrow after failed transfer",
					zap.Uint64("id", prev.ID), zap.Error(restoreErr))
				return errors.Join(transferErr, restoreErr)
			}
			return transferErr
		}
	}

	s.metrics.ObserveTransition(prev.State, next.State)
	fields := []zap.Field{
		zap.Uint64("id", prev.ID),
		zap.Stringer("from", prev.State),
		zap.Stringer("to", next.State),
	}
	if payee != "" {
		fields = append(fields,
			zap.String("payee", string(payee)),
			zap.Stringer("amount", btcutil.Amount(next.Amount)))
	}
	s.logger.Info("escrow "+op, fields...)
	return nil
}

func (s *EscrowService) returnDeposit(ctx context.Context, buyer model.Account, deposit uint64) {
	if err := s.vault.Transfer(ctx, buyer, deposit); err != nil {
		s.logger.Error("return deposit after failed create",
			zap.String("buyer", string(buyer)),
			zap.Stringer("deposit", btcutil.Amount(deposit)),
			zap.Error(err))
	}
}

// emit stamps the event envelope and hands it to the notifier. Delivery problems
// never affect the outcome of the call.
func (s *EscrowService) emit(ctx context.Context, event model.Event) {
	s.eventSeq++
	event.ID = s.newID()
	event.Sequence = s.eventSeq
	event.OccurredAt = s.now()
	s.notifier.Notify(ctx, event)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, model.Event) {}
