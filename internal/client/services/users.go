package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/persistence"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

// DefaultRecentWindow is how far back Stats counts a registration as recent.
const DefaultRecentWindow = 30 * 24 * time.Hour

const maxIDAttempts = 5

// UserDirectory owns the registered users. Emails are unique ignoring case and
// ids are unique. Every mutation is saved before it becomes visible.
type UserDirectory struct {
	gw     *persistence.Gateway
	log    logging.Logger
	now    func() time.Time
	newID  func() (string, error)
	params cryptox.Params
	recent time.Duration
	users  []models.User
}

type DirectoryOption func(*UserDirectory)

// WithClock sets the time source used for registration and login stamps.
func WithClock(now func() time.Time) DirectoryOption {
	return func(d *UserDirectory) { d.now = now }
}

// WithHashParams sets the argon2id cost for new digests.
func WithHashParams(p cryptox.Params) DirectoryOption {
	return func(d *UserDirectory) { d.params = p }
}

// WithRecentWindow sets the window Stats uses for its recent count.
func WithRecentWindow(w time.Duration) DirectoryOption {
	return func(d *UserDirectory) {
		if w > 0 {
			d.recent = w
		}
	}
}

// WithIDGenerator replaces the uuid v7 id source.
func WithIDGenerator(gen func() (string, error)) DirectoryOption {
	return func(d *UserDirectory) { d.newID = gen }
}

func NewUserDirectory(gw *persistence.Gateway, log logging.Logger, opts ...DirectoryOption) *UserDirectory {
	if log == nil {
		log = logging.Nop()
	}
	d := &UserDirectory{
		gw:     gw,
		log:    log.With("component", "users"),
		now:    time.Now,
		newID:  newUUIDv7,
		params: cryptox.DefaultParams,
		recent: DefaultRecentWindow,
		users:  []models.User{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Hydrate loads the persisted directory. A missing or corrupt record, or one
// that repeats an id or email, yields an empty directory.
func (d *UserDirectory) Hydrate(ctx context.Context) {
	d.users = persistence.Load(ctx, d.gw, persistence.KeyUsers, []models.User{}, validUsers)
	if d.users == nil {
		d.users = []models.User{}
	}
	d.log.Debug(ctx, "users hydrated", "count", len(d.users))
}

func validUsers(users []models.User) error {
	ids := make(map[string]struct{}, len(users))
	emails := make(map[string]struct{}, len(users))
	for i, u := range users {
		if u.ID == "" {
			return fmt.Errorf("user #%d has no id", i)
		}
		email := models.NormalizeEmail(u.Email)
		if email == "" {
			return fmt.Errorf("user %s has no email", u.ID)
		}
		if _, dup := ids[u.ID]; dup {
			return fmt.Errorf("duplicate user id %s", u.ID)
		}
		if _, dup := emails[email]; dup {
			return fmt.Errorf("duplicate email %s", email)
		}
		ids[u.ID] = struct{}{}
		emails[email] = struct{}{}
	}
	return nil
}

func (d *UserDirectory) indexByID(id string) int {
	return slices.IndexFunc(d.users, func(u models.User) bool { return u.ID == id })
}

func (d *UserDirectory) indexByEmail(email string) int {
	email = models.NormalizeEmail(email)
	return slices.IndexFunc(d.users, func(u models.User) bool { return models.NormalizeEmail(u.Email) == email })
}

func (d *UserDirectory) commit(ctx context.Context, next []models.User) error {
	if err := d.gw.Save(ctx, persistence.KeyUsers, next); err != nil {
		return err
	}
	d.users = next
	return nil
}

func (d *UserDirectory) uniqueID() (string, error) {
	for range maxIDAttempts {
		id, err := d.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate user id: %w", err)
		}
		if id != "" && d.indexByID(id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("failed to generate unique user id")
}

// Register adds an active user with a fresh id and a digest of password.
// The email is stored lowercased and must not be blank.
func (d *UserDirectory) Register(ctx context.Context, firstName, lastName, email string, password []byte) (models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return models.User{}, common.ErrInvalidEmail
	}
	if d.indexByEmail(email) >= 0 {
		return models.User{}, common.ErrorEmailAlreadyRegistered
	}

	id, err := d.uniqueID()
	if err != nil {
		return models.User{}, err
	}

	digest, err := cryptox.HashPassword(password, d.params)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		ID:             id,
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		Email:          email,
		PasswordDigest: digest,
		DateRegistered: d.now().UTC(),
		IsActive:       true,
	}

	if err := d.commit(ctx, append(slices.Clone(d.users), u)); err != nil {
		return models.User{}, err
	}
	d.log.Info(ctx, "user registered", "id", id)
	return u, nil
}

// Authenticate returns the active user with this email whose digest matches
// password. Unknown email, inactive user and wrong password all return false.
func (d *UserDirectory) Authenticate(ctx context.Context, email string, password []byte) (models.User, bool) {
	i := d.indexByEmail(email)
	if i < 0 {
		return models.User{}, false
	}
	u := d.users[i]
	if !u.IsActive {
		return models.User{}, false
	}
	if !d.verify(ctx, u, password) {
		return models.User{}, false
	}
	return u, true
}

func (d *UserDirectory) verify(ctx context.Context, u models.User, password []byte) bool {
	ok, err := cryptox.VerifyPassword(password, u.PasswordDigest)
	if err != nil {
		d.log.Warn(ctx, "unreadable password digest", "id", u.ID, "error", err)
		return false
	}
	return ok
}

// Update applies the non-nil fields of upd. A changed email is normalized and
// must stay unique.
func (d *UserDirectory) Update(ctx context.Context, id string, upd models.UserUpdate) (models.User, error) {
	i := d.indexByID(id)
	if i < 0 {
		return models.User{}, common.ErrorUserNotFound
	}

	u := d.users[i]
	if upd.FirstName != nil {
		u.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		u.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Email != nil {
		email := models.NormalizeEmail(*upd.Email)
		if email == "" {
			return models.User{}, common.ErrInvalidEmail
		}
		if j := d.indexByEmail(email); j >= 0 && j != i {
			return models.User{}, common.ErrorEmailAlreadyRegistered
		}
		u.Email = email
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}

	next := slices.Clone(d.users)
	next[i] = u
	if err := d.commit(ctx, next); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (d *UserDirectory) Activate(ctx context.Context, id string) error {
	active := true
	_, err := d.Update(ctx, id, models.UserUpdate{IsActive: &active})
	return err
}

func (d *UserDirectory) Deactivate(ctx context.Context, id string) error {
	active := false
	_, err := d.Update(ctx, id, models.UserUpdate{IsActive: &active})
	return err
}

func (d *UserDirectory) Delete(ctx context.Context, id string) error {
	i := d.indexByID(id)
	if i < 0 {
		return common.ErrorUserNotFound
	}
	if err := d.commit(ctx, slices.Delete(slices.Clone(d.users), i, i+1)); err != nil {
		return err
	}
	d.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// Stats counts users as of now. Recent users registered strictly after
// now minus the recent window.
func (d *UserDirectory) Stats(now time.Time) models.UserStats {
	cutoff := now.Add(-d.recent)
	var s models.UserStats
	for _, u := range d.users {
		s.Total++
		if u.IsActive {
			s.Active++
		}
		if u.DateRegistered.After(cutoff) {
			s.Recent++
		}
	}
	s.Inactive = s.Total - s.Active
	return s
}

// ChangePassword replaces the digest when oldPassword authenticates the user.
// Any failed check returns ErrorInvalidCredentials and changes nothing.
func (d *UserDirectory) ChangePassword(ctx context.Context, id string, oldPassword, newPassword []byte) error {
	i := d.indexByID(id)
	if i < 0 {
		return common.ErrorInvalidCredentials
	}
	u := d.users[i]
	if !u.IsActive || !d.verify(ctx, u, oldPassword) {
		return common.ErrorInvalidCredentials
	}

	digest, err := cryptox.HashPassword(newPassword, d.params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordDigest = digest

	next := slices.Clone(d.users)
	next[i] = u
	if err := d.commit(ctx, next); err != nil {
		return err
	}
	d.log.Info(ctx, "password changed", "id", id)
	return nil
}

// RecordLogin sets the user's last login time.
func (d *UserDirectory) RecordLogin(ctx context.Context, id string, at time.Time) error {
	i := d.indexByID(id)
	if i < 0 {
		return common.ErrorUserNotFound
	}
	at = at.UTC()
	next := slices.Clone(d.users)
	next[i].LastLogin = &at
	return d.commit(ctx, next)
}

func (d *UserDirectory) Get(id string) (models.User, bool) {
	i := d.indexByID(id)
	if i < 0 {
		return models.User{}, false
	}
	return d.users[i], true
}

// List returns the users in registration order.
func (d *UserDirectory) List() []models.User {
	return slices.Clone(d.users)
}

// Export writes the directory as indented JSON in its stored shape.
func (d *UserDirectory) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.users); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	return nil
}

// Import replaces the whole directory with the users read from r. The payload
// must be a JSON array of users with unique ids and emails and readable
// password digests.
func (d *UserDirectory) Import(ctx context.Context, r io.Reader) (int, error) {
	var users []models.User
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidImport, err)
	}
	if users == nil {
		return 0, fmt.Errorf("%w: not an array", common.ErrInvalidImport)
	}
	if err := validUsers(users); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidImport, err)
	}
	for i := range users {
		if err := cryptox.CheckDigest(users[i].PasswordDigest); err != nil {
			return 0, fmt.Errorf("%w: user %s: %v", common.ErrInvalidImport, users[i].ID, err)
		}
		users[i].Email = models.NormalizeEmail(users[i].Email)
	}

	if err := d.commit(ctx, users); err != nil {
		return 0, err
	}
	d.log.Info(ctx, "users imported", "count", len(users))
	return len(users), nil
}
