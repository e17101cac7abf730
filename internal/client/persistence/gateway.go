// Package persistence is the typed JSON layer over a kv.Store.
//
// Reads are fail-open: a record that cannot be decoded is logged, removed and
// replaced by the caller's default, so a corrupt key never surfaces as an
// error. Writes encode the whole value and store it with a single Set.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Storage keys shared with the browser build of the storefront.
const (
	KeyCart        = "cart"
	KeyUsers       = "registeredUsers"
	KeyCurrentUser = "currentUser"
	KeyFavorites   = "favorites"
)

type Gateway struct {
	store kv.Store
	log   logging.Logger
}

func NewGateway(store kv.Store, log logging.Logger) *Gateway {
	if log == nil {
		log = logging.Nop()
	}
	return &Gateway{store: store, log: log.With("component", "persistence")}
}

// Load decodes the JSON stored under key into a T. A missing key yields def.
// Undecodable content, or content rejected by one of checks, is treated as
// corrupt: it is logged, deleted and def is returned.
func Load[T any](ctx context.Context, g *Gateway, key string, def T, checks ...func(T) error) T {
	raw, err := g.store.Get(ctx, key)
	if err != nil {
		g.log.Error(ctx, "failed to read key, using default", "key", key, "error", err)
		return def
	}
	if raw == nil {
		return def
	}

	v, err := decode(raw, checks)
	if err != nil {
		g.discard(ctx, key, err)
		return def
	}
	return v
}

func decode[T any](raw []byte, checks []func(T) error) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %v", common.ErrStorageCorrupt, err)
	}
	for _, check := range checks {
		if err := check(v); err != nil {
			return v, fmt.Errorf("%w: %v", common.ErrStorageCorrupt, err)
		}
	}
	return v, nil
}

func (g *Gateway) discard(ctx context.Context, key string, cause error) {
	g.log.Warn(ctx, "discarding corrupt record", "key", key, "error", cause)
	if err := g.store.Delete(ctx, key); err != nil {
		g.log.Error(ctx, "failed to remove corrupt record", "key", key, "error", err)
	}
}

// Save encodes v and overwrites key with it.
func (g *Gateway) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := g.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	g.log.Debug(ctx, "saved", "key", key, "bytes", len(data))
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	if err := g.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Clear drops every stored key in a single store transaction.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.store.ReplaceAll(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	g.log.Info(ctx, "storage cleared")
	return nil
}

// Dump returns every stored record as its raw text.
func (g *Gateway) Dump(ctx context.Context) (map[string]string, error) {
	all, err := g.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to dump storage: %w", err)
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		out[k] = string(v)
	}
	return out, nil
}
