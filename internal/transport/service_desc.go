package transport

import (
	"context"

	"google.golang.org/grpc"
)

const escrowServiceName = "escrow7000.v1.EscrowService"

const (
	EscrowService_Create_FullMethodName                 = "/" + escrowServiceName + "/Create"
	EscrowService_Complete_FullMethodName               = "/" + escrowServiceName + "/Complete"
	EscrowService_Refund_FullMethodName                 = "/" + escrowServiceName + "/Refund"
	EscrowService_Dispute_FullMethodName                = "/" + escrowServiceName + "/Dispute"
	EscrowService_ResolveDispute_FullMethodName         = "/" + escrowServiceName + "/ResolveDispute"
	EscrowService_SetEscrowDuration_FullMethodName      = "/" + escrowServiceName + "/SetEscrowDuration"
	EscrowService_SetEscrowFee_FullMethodName           = "/" + escrowServiceName + "/SetEscrowFee"
	EscrowService_WithdrawBalance_FullMethodName        = "/" + escrowServiceName + "/WithdrawBalance"
	EscrowService_GetTransactionMetadata_FullMethodName = "/" + escrowServiceName + "/GetTransactionMetadata"
	EscrowService_GetItemHash_FullMethodName            = "/" + escrowServiceName + "/GetItemHash"
	EscrowService_GetEscrow_FullMethodName              = "/" + escrowServiceName + "/GetEscrow"
	EscrowService_GetConfig_FullMethodName              = "/" + escrowServiceName + "/GetConfig"
	EscrowService_Audit_FullMethodName                  = "/" + escrowServiceName + "/Audit"
)

// EscrowServiceServer is the server API for the escrow service.
type EscrowServiceServer interface {
	Create(context.Context, *CreateEscrowRequest) (*CreateEscrowResponse, error)
	Complete(context.Context, *EscrowIDRequest) (*Empty, error)
	Refund(context.Context, *EscrowIDRequest) (*Empty, error)
	Dispute(context.Context, *EscrowIDRequest) (*Empty, error)
	ResolveDispute(context.Context, *ResolveDisputeRequest) (*Empty, error)
	SetEscrowDuration(context.Context, *SetEscrowDurationRequest) (*Empty, error)
	SetEscrowFee(context.Context, *SetEscrowFeeRequest) (*Empty, error)
	WithdrawBalance(context.Context, *Empty) (*WithdrawBalanceResponse, error)
	GetTransactionMetadata(context.Context, *EscrowIDRequest) (*TransactionMetadataResponse, error)
	GetItemHash(context.Context, *EscrowIDRequest) (*ItemHashResponse, error)
	GetEscrow(context.Context, *EscrowIDRequest) (*Escrow, error)
	GetConfig(context.Context, *Empty) (*ConfigResponse, error)
	Audit(context.Context, *Empty) (*AuditResponse, error)
}

// RegisterEscrowServiceServer attaches srv to a gRPC server.
func RegisterEscrowServiceServer(s grpc.ServiceRegistrar, srv EscrowServiceServer) {
	s.RegisterService(&EscrowService_ServiceDesc, srv)
}

// EscrowService_ServiceDesc describes the escrow service without a protobuf schema;
// messages travel through the json codec.
var EscrowService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: escrowServiceName,
	HandlerType: (*EscrowServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Create", Handler: unaryHandler(EscrowService_Create_FullMethodName, EscrowServiceServer.Create)},
		{MethodName: "Complete", Handler: unaryHandler(EscrowService_Complete_FullMethodName, EscrowServiceServer.Complete)},
		{MethodName: "Refund", Handler: unaryHandler(EscrowService_Refund_FullMethodName, EscrowServiceServer.Refund)},
		{MethodName: "Dispute", Handler: unaryHandler(EscrowService_Dispute_FullMethodName, EscrowServiceServer.Dispute)},
		{MethodName: "ResolveDispute", Handler: unaryHandler(EscrowService_ResolveDispute_FullMethodName, EscrowServiceServer.ResolveDispute)},
		{MethodName: "SetEscrowDuration", Handler: unaryHandler(EscrowService_SetEscrowDuration_FullMethodName, EscrowServiceServer.SetEscrowDuration)},
		{MethodName: "SetEscrowFee", Handler: unaryHandler(EscrowService_SetEscrowFee_FullMethodName, EscrowServiceServer.SetEscrowFee)},
		{MethodName: "WithdrawBalance", Handler: unaryHandler(EscrowService_WithdrawBalance_FullMethodName, EscrowServiceServer.WithdrawBalance)},
		{MethodName: "GetTransactionMetadata", Handler: unaryHandler(EscrowService_GetTransactionMetadata_FullMethodName, EscrowServiceServer.GetTransactionMetadata)},
		{MethodName: "GetItemHash", Handler: unaryHandler(EscrowService_GetItemHash_FullMethodName, EscrowServiceServer.GetItemHash)},
		{MethodName: "GetEscrow", Handler: unaryHandler(EscrowService_GetEscrow_FullMethodName, EscrowServiceServer.GetEscrow)},
		{MethodName: "GetConfig", Handler: unaryHandler(EscrowService_GetConfig_FullMethodName, EscrowServiceServer.GetConfig)},
		{MethodName: "Audit", Handler: unaryHandler(EscrowService_Audit_FullMethodName, EscrowServiceServer.Audit)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "escrow7000/v1/escrow.json",
}

func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(EscrowServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EscrowServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EscrowServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
