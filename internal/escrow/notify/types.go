package notify

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

type (
	Notifier interface {
		Notify(ctx context.Context, event model.Event)
	}
	EventWriter interface {
		InsertEvents(ctx context.Context, events []model.Event) error
	}
)
