package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/BarryMolina/mathsfun-sub001/internal/auth"
	"github.com/BarryMolina/mathsfun-sub001/internal/chatter"
	"github.com/BarryMolina/mathsfun-sub001/internal/config"
	"github.com/BarryMolina/mathsfun-sub001/internal/facts"
	"github.com/BarryMolina/mathsfun-sub001/internal/store"
	"github.com/BarryMolina/mathsfun-sub001/internal/ui"
	"github.com/BarryMolina/mathsfun-sub001/internal/ui/components"
	"github.com/BarryMolina/mathsfun-sub001/internal/ui/theme"
)

// App ties the store, fact tracking, sign-in, and quiz flows together
// behind the interactive menu.
type App struct {
	store   *store.Store
	tracker *facts.Service
	auth    *auth.Service // nil when Google sign-in is unconfigured
	chat    *chatter.Chatter
	cfg     *config.Config
	log     *zap.Logger

	in  io.Reader
	out io.Writer

	user *store.User
}

// New assembles the app. auth and chat may be nil.
func New(st *store.Store, authSvc *auth.Service, chat *chatter.Chatter, cfg *config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		store:   st,
		tracker: facts.NewService(st.Facts(), log),
		auth:    authSvc,
		chat:    chat,
		cfg:     cfg,
		log:     log,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Run shows the welcome banner and loops on the main menu until the
// player exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.resolveUser(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, theme.Banner.Render("🧮 Welcome to MathsFun!"))
	fmt.Fprintf(a.out, "Hi %s! Let's practice some addition.\n\n", a.user.DisplayName)

	for {
		items, actions := a.menuItems()
		choice, err := ui.Pick("What would you like to do?", items)
		if err != nil {
			if errors.Is(err, ui.ErrPickCancelled) {
				fmt.Fprintln(a.out, "\n👋 Goodbye! Keep practicing!")
				return nil
			}
			return err
		}
		if err := actions[choice](ctx); err != nil {
			if errors.Is(err, errExit) {
				fmt.Fprintln(a.out, "\n👋 Goodbye! Keep practicing!")
				return nil
			}
			if errors.Is(err, ui.ErrPickCancelled) || errors.Is(err, io.EOF) {
				continue
			}
			return err
		}
		fmt.Fprintln(a.out)
	}
}

// ShowStats prints the stats view once, for the non-interactive `stats`
// subcommand.
func (a *App) ShowStats(ctx context.Context) error {
	if err := a.resolveUser(ctx); err != nil {
		return err
	}
	return a.showStats(ctx)
}

var errExit = errors.New("exit requested")

type menuAction func(context.Context) error

func (a *App) menuItems() ([]components.MenuItem, []menuAction) {
	items := []components.MenuItem{
		{Label: "➕ Addition Quiz"},
		{Label: "📋 Addition Tables"},
		{Label: "🔁 Review Tricky Facts"},
		{Label: "📊 My Stats"},
	}
	actions := []menuAction{
		a.runAddition,
		a.runTables,
		a.runReview,
		a.showStats,
	}

	switch {
	case a.auth == nil:
		// Sign-in entry omitted entirely when unconfigured.
	case a.user.ID == store.LocalUserID:
		items = append(items, components.MenuItem{Label: "🔑 Sign in with Google"})
		actions = append(actions, a.signIn)
	default:
		items = append(items, components.MenuItem{Label: fmt.Sprintf("🚪 Sign out (%s)", a.user.Email)})
		actions = append(actions, a.signOut)
	}

	items = append(items, components.MenuItem{Label: "👋 Exit"})
	actions = append(actions, func(context.Context) error { return errExit })
	return items, actions
}

// resolveUser restores a cached Google identity if present, otherwise
// falls back to the shared local profile.
func (a *App) resolveUser(ctx context.Context) error {
	if a.auth != nil {
		if id, err := a.auth.CurrentIdentity(); err == nil {
			u, err := a.upsertIdentity(ctx, id)
			if err != nil {
				return err
			}
			a.user = u
			return nil
		} else if !errors.Is(err, auth.ErrNotSignedIn) {
			a.log.Warn("could not restore session", zap.Error(err))
		}
	}

	u, err := a.store.Users().EnsureLocal(ctx)
	if err != nil {
		return fmt.Errorf("preparing local profile: %w", err)
	}
	a.user = u
	return nil
}

func (a *App) upsertIdentity(ctx context.Context, id *auth.Identity) (*store.User, error) {
	u := &store.User{
		ID:          id.ID,
		Email:       id.Email,
		DisplayName: id.Name,
	}
	if u.DisplayName == "" {
		u.DisplayName = id.Email
	}
	if err := a.store.Users().Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("saving signed-in profile: %w", err)
	}
	return u, nil
}

func (a *App) signIn(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n🔑 Opening your browser to sign in with Google...")
	id, err := a.auth.SignIn(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "❌ Sign-in didn't work: %v\n", err)
		return nil
	}
	u, err := a.upsertIdentity(ctx, id)
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintf(a.out, "✅ Signed in as %s\n", u.Email)
	return nil
}

func (a *App) signOut(ctx context.Context) error {
	if err := a.auth.SignOut(); err != nil {
		a.log.Warn("sign out failed", zap.Error(err))
	}
	u, err := a.store.Users().EnsureLocal(ctx)
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintln(a.out, "✅ Signed out. Progress now saves to the local profile.")
	return nil
}
