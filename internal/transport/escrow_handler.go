package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/service"
)

// EscrowHandler implements EscrowServiceServer on top of the escrow service.
type EscrowHandler struct {
	api          EscrowAPI
	params       *chaincfg.Params
	auditWorkers int
	logger       *zap.Logger
}

// NewEscrowHandler returns an EscrowHandler that accepts accounts encoded for params.
func NewEscrowHandler(api EscrowAPI, params *chaincfg.Params, auditWorkers int, logger *zap.Logger) (*EscrowHandler, error) {
	if api == nil {
		return nil, errors.New("escrow api is required")
	}
	if params == nil {
		return nil, errors.New("chain params are required")
	}
	return &EscrowHandler{
		api:          api,
		params:       params,
		auditWorkers: auditWorkers,
		logger:       logger.Named("escrow_handler"),
	}, nil
}

func (h *EscrowHandler) Create(ctx context.Context, req *CreateEscrowRequest) (*CreateEscrowResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	seller, err := ParseAccount(req.Seller, h.params)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "seller: %v", err)
	}
	hash, err := chainhash.NewHashFromStr(req.ItemHash)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "item hash: %v", err)
	}

	id, err := h.api.Create(ctx, caller, seller, req.EncryptedItemMetadata, *hash, req.Deposit)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &CreateEscrowResponse{ID: id}, nil
}

func (h *EscrowHandler) Complete(ctx context.Context, req *EscrowIDRequest) (*Empty, error) {
	return h.partyCall(ctx, req, h.api.Complete)
}

func (h *EscrowHandler) Refund(ctx context.Context, req *EscrowIDRequest) (*Empty, error) {
	return h.partyCall(ctx, req, h.api.Refund)
}

func (h *EscrowHandler) Dispute(ctx context.Context, req *EscrowIDRequest) (*Empty, error) {
	return h.partyCall(ctx, req, h.api.Dispute)
}

func (h *EscrowHandler) ResolveDispute(ctx context.Context, req *ResolveDisputeRequest) (*Empty, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.api.ResolveDispute(ctx, caller, req.ID, req.IsResolved); err != nil {
		return nil, h.toStatus(err)
	}
	return &Empty{}, nil
}

func (h *EscrowHandler) SetEscrowDuration(ctx context.Context, req *SetEscrowDurationRequest) (*Empty, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	duration, err := time.ParseDuration(req.Duration)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "duration: %v", err)
	}
	if err := h.api.SetEscrowDuration(ctx, caller, duration); err != nil {
		return nil, h.toStatus(err)
	}
	return &Empty{}, nil
}

func (h *EscrowHandler) SetEscrowFee(ctx context.Context, req *SetEscrowFeeRequest) (*Empty, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.api.SetEscrowFee(ctx, caller, req.Fee); err != nil {
		return nil, h.toStatus(err)
	}
	return &Empty{}, nil
}

func (h *EscrowHandler) WithdrawBalance(ctx context.Context, _ *Empty) (*WithdrawBalanceResponse, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := h.api.WithdrawBalance(ctx, caller)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &WithdrawBalanceResponse{Amount: amount}, nil
}

func (h *EscrowHandler) GetTransactionMetadata(ctx context.Context, req *EscrowIDRequest) (*TransactionMetadataResponse, error) {
	metadata, err := h.api.TransactionMetadata(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &TransactionMetadataResponse{EncryptedItemMetadata: metadata}, nil
}

func (h *EscrowHandler) GetItemHash(ctx context.Context, req *EscrowIDRequest) (*ItemHashResponse, error) {
	hash, err := h.api.ItemHash(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &ItemHashResponse{ItemHash: hash.String()}, nil
}

func (h *EscrowHandler) GetEscrow(ctx context.Context, req *EscrowIDRequest) (*Escrow, error) {
	tx, found, err := h.api.Transaction(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	if !found {
		return nil, status.Errorf(codes.NotFound, "escrow %d not found", req.ID)
	}
	return escrowFromModel(tx), nil
}

func (h *EscrowHandler) GetConfig(ctx context.Context, _ *Empty) (*ConfigResponse, error) {
	count, err := h.api.TransactionCount(ctx)
	if err != nil {
		return nil, h.toStatus(err)
	}
	cfg := h.api.Config()
	return &ConfigResponse{
		Owner:            string(h.api.Owner()),
		EscrowDuration:   cfg.EscrowDuration.String(),
		EscrowFee:        cfg.EscrowFee,
		FeeBalance:       h.api.FeeBalance(),
		TransactionCount: count,
	}, nil
}

func (h *EscrowHandler) Audit(ctx context.Context, _ *Empty) (*AuditResponse, error) {
	report, err := h.api.Audit(ctx, h.auditWorkers)
	if err != nil {
		return nil, h.toStatus(err)
	}
	byState := make(map[string]uint64, len(report.ByState))
	for state, count := range report.ByState {
		byState[state.String()] = count
	}
	return &AuditResponse{
		Transactions: report.Transactions,
		ByState:      byState,
		OpenAmount:   report.OpenAmount,
		FeeBalance:   report.FeeBalance,
		Held:         report.Held,
		Balanced:     report.Balanced,
	}, nil
}

func (h *EscrowHandler) partyCall(
	ctx context.Context,
	req *EscrowIDRequest,
	call func(context.Context, model.Account, uint64) error,
) (*Empty, error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := call(ctx, caller, req.ID); err != nil {
		return nil, h.toStatus(err)
	}
	return &Empty{}, nil
}

// caller returns the normalized caller account. An absent caller is passed through
// and left to the service to reject.
func (h *EscrowHandler) caller(ctx context.Context) (model.Account, error) {
	raw := CallerFromContext(ctx)
	if raw == "" {
		return "", nil
	}
	account, err := ParseAccount(string(raw), h.params)
	if err != nil {
		return "", status.Errorf(codes.InvalidArgument, "caller: %v", err)
	}
	return account, nil
}

func (h *EscrowHandler) toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrNothingToWithdraw):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrInsufficientDeposit):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.Error("escrow call failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

// ParseAccount accepts any address valid on params and returns its canonical encoding.
func ParseAccount(value string, params *chaincfg.Params) (model.Account, error) {
	if value == "" {
		return "", errors.New("account is empty")
	}
	addr, err := btcutil.DecodeAddress(value, params)
	if err != nil {
		return "", fmt.Errorf("decode address %q: %w", value, err)
	}
	if !addr.IsForNet(params) {
		return "", fmt.Errorf("address %q is not for %s", value, params.Name)
	}
	return model.Account(addr.EncodeAddress()), nil
}

func escrowFromModel(tx model.Transaction) *Escrow {
	return &Escrow{
		ID:                    tx.ID,
		Buyer:                 string(tx.Buyer),
		Seller:                string(tx.Seller),
		Amount:                tx.Amount,
		State:                 tx.State.String(),
		EncryptedItemMetadata: tx.EncryptedItemMetadata,
		ItemHash:              tx.ItemHash.String(),
		DisputeResolved:       tx.DisputeResolved,
		Revision:              tx.Revision,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
}
