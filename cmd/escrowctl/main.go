// Package main is a command line client for escrowd.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/goodnatureofminers/escrow7000-backend/internal/transport"
)

type options struct {
	Addr    string        `long:"addr" env:"ESCROWCTL_ADDR" description:"escrowd grpc addr" default:"localhost:8000"`
	Caller  string        `long:"caller" env:"ESCROWCTL_CALLER" description:"address the call is made as"`
	Timeout time.Duration `long:"timeout" env:"ESCROWCTL_TIMEOUT" description:"per call timeout" default:"10s"`
}

// app carries what every sub-command needs to make a call.
type app struct {
	opts options
	out  io.Writer
	dial func(addr string) (transport.EscrowServiceClient, io.Closer, error)
}

func main() {
	a := &app{out: os.Stdout, dial: dial}
	parser := newParser(a)
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dial(addr string) (transport.EscrowServiceClient, io.Closer, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return transport.NewEscrowServiceClient(conn), conn, nil
}

// call dials escrowd, runs fn under the caller identity and prints its response as JSON.
func (a *app) call(fn func(ctx context.Context, client transport.EscrowServiceClient) (any, error)) error {
	client, closer, err := a.dial(a.opts.Addr)
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), a.opts.Timeout)
	defer cancel()
	ctx = transport.WithCaller(ctx, a.opts.Caller)

	resp, err := fn(ctx, client)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
