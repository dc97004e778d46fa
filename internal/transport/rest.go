package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxRequestBody matches the default gRPC receive limit.
const maxRequestBody = 4 << 20

type restRoute struct {
	method  string
	pattern string
	handle  func(ctx context.Context, r *http.Request, params map[string]string) (any, error)
}

// RegisterEscrowRoutes exposes the escrow RPCs as JSON over HTTP on mux, forwarding to client.
func RegisterEscrowRoutes(mux *gwruntime.ServeMux, client EscrowServiceClient) error {
	routes := []restRoute{
		{http.MethodPost, "/v1/escrows", func(ctx context.Context, r *http.Request, _ map[string]string) (any, error) {
			req := new(CreateEscrowRequest)
			if err := decodeBody(r, req); err != nil {
				return nil, err
			}
			return client.Create(ctx, req)
		}},
		{http.MethodGet, "/v1/escrows/{id}", func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
			req, err := escrowID(params)
			if err != nil {
				return nil, err
			}
			return client.GetEscrow(ctx, req)
		}},
		{http.MethodGet, "/v1/escrows/{id}/metadata", func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
			req, err := escrowID(params)
			if err != nil {
				return nil, err
			}
			return client.GetTransactionMetadata(ctx, req)
		}},
		{http.MethodGet, "/v1/escrows/{id}/item-hash", func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
			req, err := escrowID(params)
			if err != nil {
				return nil, err
			}
			return client.GetItemHash(ctx, req)
		}},
		{http.MethodPost, "/v1/escrows/{id}/complete", func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
			req, err := escrowID(params)
			if err != nil {
				return nil, err
			}
			return client.Complete(ctx, req)
		}},
		{http.MethodPost, "/v1/escrows/{id}/refund", func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
			req, err := escrowID(params)
			if err != nil {
				return nil, err
			}
			return client.Refund(ctx, req)
		}},
		{http.MethodPost, "/v1/escrows/{id}/dispute", func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
			req, err := escrowID(params)
			if err != nil {
				return nil, err
			}
			return client.Dispute(ctx, req)
		}},
		{http.MethodPost, "/v1/escrows/{id}/resolve", func(ctx context.Context, r *http.Request, params map[string]string) (any, error) {
			id, err := escrowID(params)
			if err != nil {
				return nil, err
			}
			req := new(ResolveDisputeRequest)
			if err := decodeBody(r, req); err != nil {
				return nil, err
			}
			req.ID = id.ID
			return client.ResolveDispute(ctx, req)
		}},
		{http.MethodGet, "/v1/config", func(ctx context.Context, _ *http.Request, _ map[string]string) (any, error) {
			return client.GetConfig(ctx, &Empty{})
		}},
		{http.MethodPut, "/v1/config/escrow-duration", func(ctx context.Context, r *http.Request, _ map[string]string) (any, error) {
			req := new(SetEscrowDurationRequest)
			if err := decodeBody(r, req); err != nil {
				return nil, err
			}
			return client.SetEscrowDuration(ctx, req)
		}},
		{http.MethodPut, "/v1/config/escrow-fee", func(ctx context.Context, r *http.Request, _ map[string]string) (any, error) {
			req := new(SetEscrowFeeRequest)
			if err := decodeBody(r, req); err != nil {
				return nil, err
			}
			return client.SetEscrowFee(ctx, req)
		}},
		{http.MethodPost, "/v1/balance/withdraw", func(ctx context.Context, _ *http.Request, _ map[string]string) (any, error) {
			return client.WithdrawBalance(ctx, &Empty{})
		}},
		{http.MethodGet, "/v1/audit", func(ctx context.Context, _ *http.Request, _ map[string]string) (any, error) {
			return client.Audit(ctx, &Empty{})
		}},
	}

	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, restHandler(route.handle)); err != nil {
			return fmt.Errorf("register %s %s: %w", route.method, route.pattern, err)
		}
	}
	return nil
}

func restHandler(handle func(context.Context, *http.Request, map[string]string) (any, error)) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		ctx := WithCaller(r.Context(), r.Header.Get(CallerHeader))
		resp, err := handle(ctx, r, params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	writeJSON(w, gwruntime.HTTPStatusFromCode(st.Code()), restError{
		Code:    st.Code().String(),
		Message: st.Message(),
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	data, err := marshaler.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", marshaler.ContentType(body))
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return status.Errorf(codes.InvalidArgument, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return status.Errorf(codes.InvalidArgument, "read body: %v", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := marshaler.Unmarshal(data, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode body: %v", err)
	}
	return nil
}

func escrowID(params map[string]string) (*EscrowIDRequest, error) {
	id, err := strconv.ParseUint(params["id"], 10, 64)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "escrow id %q: %v", params["id"], err)
	}
	return &EscrowIDRequest{ID: id}, nil
}
