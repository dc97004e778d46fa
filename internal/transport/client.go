package transport

import (
	"context"

	"google.golang.org/grpc"
)

// EscrowServiceClient is the client API for the escrow service.
type EscrowServiceClient interface {
	Create(ctx context.Context, in *CreateEscrowRequest, opts ...grpc.CallOption) (*CreateEscrowResponse, error)
	Complete(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Empty, error)
	Refund(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Empty, error)
	Dispute(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Empty, error)
	ResolveDispute(ctx context.Context, in *ResolveDisputeRequest, opts ...grpc.CallOption) (*Empty, error)
	SetEscrowDuration(ctx context.Context, in *SetEscrowDurationRequest, opts ...grpc.CallOption) (*Empty, error)
	SetEscrowFee(ctx context.Context, in *SetEscrowFeeRequest, opts ...grpc.CallOption) (*Empty, error)
	WithdrawBalance(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*WithdrawBalanceResponse, error)
	GetTransactionMetadata(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*TransactionMetadataResponse, error)
	GetItemHash(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*ItemHashResponse, error)
	GetEscrow(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Escrow, error)
	GetConfig(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ConfigResponse, error)
	Audit(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AuditResponse, error)
}

type escrowServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEscrowServiceClient wraps a connection; every call uses the json codec.
func NewEscrowServiceClient(cc grpc.ClientConnInterface) EscrowServiceClient {
	return &escrowServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *escrowServiceClient) Create(ctx context.Context, in *CreateEscrowRequest, opts ...grpc.CallOption) (*CreateEscrowResponse, error) {
	return invoke[CreateEscrowResponse](ctx, c.cc, EscrowService_Create_FullMethodName, in, opts)
}

func (c *escrowServiceClient) Complete(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, EscrowService_Complete_FullMethodName, in, opts)
}

func (c *escrowServiceClient) Refund(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, EscrowService_Refund_FullMethodName, in, opts)
}

func (c *escrowServiceClient) Dispute(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, EscrowService_Dispute_FullMethodName, in, opts)
}

func (c *escrowServiceClient) ResolveDispute(ctx context.Context, in *ResolveDisputeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, EscrowService_ResolveDispute_FullMethodName, in, opts)
}

func (c *escrowServiceClient) SetEscrowDuration(ctx context.Context, in *SetEscrowDurationRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, EscrowService_SetEscrowDuration_FullMethodName, in, opts)
}

func (c *escrowServiceClient) SetEscrowFee(ctx context.Context, in *SetEscrowFeeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, EscrowService_SetEscrowFee_FullMethodName, in, opts)
}

func (c *escrowServiceClient) WithdrawBalance(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*WithdrawBalanceResponse, error) {
	return invoke[WithdrawBalanceResponse](ctx, c.cc, EscrowService_WithdrawBalance_FullMethodName, in, opts)
}

func (c *escrowServiceClient) GetTransactionMetadata(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*TransactionMetadataResponse, error) {
	return invoke[TransactionMetadataResponse](ctx, c.cc, EscrowService_GetTransactionMetadata_FullMethodName, in, opts)
}

func (c *escrowServiceClient) GetItemHash(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*ItemHashResponse, error) {
	return invoke[ItemHashResponse](ctx, c.cc, EscrowService_GetItemHash_FullMethodName, in, opts)
}

func (c *escrowServiceClient) GetEscrow(ctx context.Context, in *EscrowIDRequest, opts ...grpc.CallOption) (*Escrow, error) {
	return invoke[Escrow](ctx, c.cc, EscrowService_GetEscrow_FullMethodName, in, opts)
}

func (c *escrowServiceClient) GetConfig(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ConfigResponse, error) {
	return invoke[ConfigResponse](ctx, c.cc, EscrowService_GetConfig_FullMethodName, in, opts)
}

func (c *escrowServiceClient) Audit(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AuditResponse, error) {
	return invoke[AuditResponse](ctx, c.cc, EscrowService_Audit_FullMethodName, in, opts)
}
