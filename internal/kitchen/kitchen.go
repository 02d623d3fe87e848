// Package kitchen implements the restaurant floor and catalog rules: product
// and menu creation with the menu price check, order table occupancy changes,
// and grouping tables for a shared party.
//
// Every operation that reads state to decide a mutation runs inside a single
// storage.Store.Transact call, so the check and the write it guards commit or
// roll back together. Events are published only after commit.
package kitchen

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/events"
	"github.com/yeongunheo/kitchenpos/internal/metrics"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

// Options carries the collaborators shared by all components. Zero values
// are replaced with slog.Default, a no-op publisher and no metrics.
type Options struct {
	Logger    *slog.Logger
	Publisher events.Publisher
	Metrics   *metrics.Metrics
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Publisher == nil {
		o.Publisher = events.NopPublisher{}
	}
	return o
}

// Kitchen bundles the components over one store.
type Kitchen struct {
	Products    *ProductCatalog
	MenuGroups  *MenuGroups
	Menus       *Menus
	Tables      *Tables
	TableGroups *TableGroups
}

// New wires every component to store.
func New(store storage.Store, opts Options) *Kitchen {
	return &Kitchen{
		Products:    NewProductCatalog(store, opts),
		MenuGroups:  NewMenuGroups(store, opts),
		Menus:       NewMenus(store, opts),
		Tables:      NewTables(store, opts),
		TableGroups: NewTableGroups(store, opts),
	}
}

// publish sends event and logs, but otherwise ignores, a failure. The change
// it describes is already committed.
func publish(ctx context.Context, opts Options, event events.Event) {
	if err := opts.Publisher.Publish(ctx, event); err != nil {
		opts.Logger.Error("Failed to publish event", "type", event.Type, "event_id", event.ID, "error", err)
	}
}

// conflictToApp turns a lost optimistic check or serialization failure into
// apperr.ErrConcurrentModification and passes every other error through.
func conflictToApp(err error) error {
	if err == nil || apperr.KindOf(err) != apperr.Internal {
		return err
	}
	if errors.Is(err, storage.ErrConflict) {
		return apperr.ErrConcurrentModification.Wrap(err)
	}
	return err
}

// logRejection logs a business rule rejection at Warn and anything else at
// Error.
func logRejection(logger *slog.Logger, msg string, err error, args ...any) {
	args = append(args, "code", apperr.CodeOf(err), "error", err)
	if apperr.KindOf(err) == apperr.Internal {
		logger.Error(msg, args...)
		return
	}
	logger.Warn(msg, args...)
}
