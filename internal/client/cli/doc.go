// Package cli provides the interactive storefront shell.
//
// It wires configuration, the kv store, the persistence gateway and the
// storefront services (catalog, cart, favorites, users, session), then runs a
// REPL over stdin. Typical flow: hydrate every component from storage,
// resume a remembered session, and execute user commands until exit.
//
// Key features:
//   - Browse the catalog: products, search, genre, sort
//   - Cart: add, qty, remove, cart, clear, checkout
//   - Favorites: fav, unfav, favs
//   - Accounts: register, login, logout, whoami, passwd
//   - User management: users, stats, activate, deactivate, delete, export, import
//   - Storage: reset, debug
//
// The shell is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and userMessage for details.
package cli
