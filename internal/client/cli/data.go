package cli

import (
	"context"
	"maps"
	"slices"
)

// Reset wipes every stored key and reloads all components from the empty
// store. It asks for confirmation first.
func (a *App) Reset(ctx context.Context, _ []string) error {
	ok, err := GetYesNo(a.reader, "This deletes the cart, favorites, users and session. Continue?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	if err := a.gw.Clear(ctx); err != nil {
		return err
	}
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.Hydrate(ctx)
	a.println("All data cleared.")
	return nil
}

// Debug prints every stored key with its raw value.
func (a *App) Debug(ctx context.Context, _ []string) error {
	dump, err := a.gw.Dump(ctx)
	if err != nil {
		return err
	}
	if len(dump) == 0 {
		a.println("Storage is empty.")
		return nil
	}
	for _, k := range slices.Sorted(maps.Keys(dump)) {
		a.printf("%s: %s\n", k, dump[k])
	}
	return nil
}
