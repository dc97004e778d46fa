package main

import (
	"context"

	"github.com/jessevdk/go-flags"

	"github.com/goodnatureofminers/escrow7000-backend/internal/transport"
)

type idArgs struct {
	Args struct {
		ID uint64 `positional-arg-name:"id" required:"true"`
	} `positional-args:"true"`
}

type createCommand struct {
	app      *app
	Seller   string `long:"seller" description:"seller address" required:"true"`
	Metadata string `long:"metadata" description:"encrypted item metadata"`
	ItemHash string `long:"item-hash" description:"hex item hash" required:"true"`
	Deposit  uint64 `long:"deposit" description:"deposit in satoshis" required:"true"`
}

func (c *createCommand) Execute([]string) error {
	return c.app.call(func(ctx context.Context, client transport.EscrowServiceClient) (any, error) {
		return client.Create(ctx, &transport.CreateEscrowRequest{
			Seller:                c.Seller,
			EncryptedItemMetadata: c.Metadata,
			ItemHash:              c.ItemHash,
			Deposit:               c.Deposit,
		})
	})
}

// idCommand covers the calls that take nothing but an escrow id.
type idCommand struct {
	idArgs
	app  *app
	call func(context.Context, transport.EscrowServiceClient, *transport.EscrowIDRequest) (any, error)
}

func (c *idCommand) Execute([]string) error {
	return c.app.call(func(ctx context.Context, client transport.EscrowServiceClient) (any, error) {
		return c.call(ctx, client, &transport.EscrowIDRequest{ID: c.Args.ID})
	})
}

type resolveCommand struct {
	idArgs
	app      *app
	Resolved bool `long:"resolved" description:"release to the seller; omit to refund the buyer"`
}

func (c *resolveCommand) Execute([]string) error {
	return c.app.call(func(ctx context.Context, client transport.EscrowServiceClient) (any, error) {
		return client.ResolveDispute(ctx, &transport.ResolveDisputeRequest{ID: c.Args.ID, IsResolved: c.Resolved})
	})
}

type setDurationCommand struct {
	app  *app
	Args struct {
		Duration string `positional-arg-name:"duration" required:"true"`
	} `positional-args:"true"`
}

func (c *setDurationCommand) Execute([]string) error {
	return c.app.call(func(ctx context.Context, client transport.EscrowServiceClient) (any, error) {
		return client.SetEscrowDuration(ctx, &transport.SetEscrowDurationRequest{Duration: c.Args.Duration})
	})
}

type setFeeCommand struct {
	app  *app
	Args struct {
		Fee uint64 `positional-arg-name:"satoshis" required:"true"`
	} `positional-args:"true"`
}

func (c *setFeeCommand) Execute([]string) error {
	return c.app.call(func(ctx context.Context, client transport.EscrowServiceClient) (any, error) {
		return client.SetEscrowFee(ctx, &transport.SetEscrowFeeRequest{Fee: c.Args.Fee})
	})
}

// emptyCommand covers the calls without arguments.
type emptyCommand struct {
	app  *app
	call func(context.Context, transport.EscrowServiceClient) (any, error)
}

func (c *emptyCommand) Execute([]string) error {
	return c.app.call(c.call)
}

func newParser(a *app) *flags.Parser {
	parser := flags.NewParser(&a.opts, flags.Default)

	byID := func(call func(context.Context, transport.EscrowServiceClient, *transport.EscrowIDRequest) (any, error)) *idCommand {
		return &idCommand{app: a, call: call}
	}
	commands := []struct {
		name, short string
		data        any
	}{
		{"create", "Open an escrow as the buyer", &createCommand{app: a}},
		{"complete", "Release an escrow to the seller", byID(func(ctx context.Context, c transport.EscrowServiceClient, r *transport.EscrowIDRequest) (any, error) {
			return c.Complete(ctx, r)
		})},
		{"refund", "Return an escrow to the buyer", byID(func(ctx context.Context, c transport.EscrowServiceClient, r *transport.EscrowIDRequest) (any, error) {
			return c.Refund(ctx, r)
		})},
		{"dispute", "Freeze an escrow for arbitration", byID(func(ctx context.Context, c transport.EscrowServiceClient, r *transport.EscrowIDRequest) (any, error) {
			return c.Dispute(ctx, r)
		})},
		{"resolve", "Settle a disputed escrow (owner)", &resolveCommand{app: a}},
		{"get", "Show an escrow", byID(func(ctx context.Context, c transport.EscrowServiceClient, r *transport.EscrowIDRequest) (any, error) {
			return c.GetEscrow(ctx, r)
		})},
		{"metadata", "Show the encrypted item metadata", byID(func(ctx context.Context, c transport.EscrowServiceClient, r *transport.EscrowIDRequest) (any, error) {
			return c.GetTransactionMetadata(ctx, r)
		})},
		{"item-hash", "Show the item hash", byID(func(ctx context.Context, c transport.EscrowServiceClient, r *transport.EscrowIDRequest) (any, error) {
			return c.GetItemHash(ctx, r)
		})},
		{"set-duration", "Set the escrow duration (owner)", &setDurationCommand{app: a}},
		{"set-fee", "Set the escrow fee (owner)", &setFeeCommand{app: a}},
		{"withdraw", "Send the fee balance to the owner", &emptyCommand{app: a, call: func(ctx context.Context, c transport.EscrowServiceClient) (any, error) {
			return c.WithdrawBalance(ctx, &transport.Empty{})
		}}},
		{"config", "Show the service configuration", &emptyCommand{app: a, call: func(ctx context.Context, c transport.EscrowServiceClient) (any, error) {
			return c.GetConfig(ctx, &transport.Empty{})
		}}},
		{"audit", "Run a custody audit", &emptyCommand{app: a, call: func(ctx context.Context, c transport.EscrowServiceClient) (any, error) {
			return c.Audit(ctx, &transport.Empty{})
		}}},
	}
	for _, cmd := range commands {
		if _, err := parser.AddCommand(cmd.name, cmd.short, cmd.short, cmd.data); err != nil {
			panic("register command " + cmd.name + ": " + err.Error())
		}
	}
	return parser
}
