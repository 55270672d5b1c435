// Command main is the Ripple command-line client. It issues store and
// service commands and renders the derived views; all "not found" results
// are rendered as silent absence, never as failures.
package main

import (
	"fmt"
	"os"

	"ripple/internal/config"
	"ripple/internal/feed"
	"ripple/internal/service"
	"ripple/internal/session"
	"ripple/internal/store"
	"ripple/internal/suggest"

	"github.com/spf13/cobra"
)

type app struct {
	cfg      *config.Config
	store    *store.Store
	sessions *session.Manager
}

func (a *app) init() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.store = st
	a.sessions = session.NewManager(cfg.SessionPath)
	return nil
}

// actor resolves the logged-in user, or fails with a hint.
func (a *app) actor() (string, error) {
	user, ok, err := a.sessions.Resume(a.store)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("not logged in; run `ripple login` first")
	}
	return user.ID, nil
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "ripple",
		Short:         "Ripple social feed client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newFeedCmd(a),
		newSuggestionsCmd(a),
		newSuggestCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			users := service.NewUserService(a.store, a.sessions)
			user, err := users.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := a.sessions.Set(user.ID); err != nil {
				return err
			}
			fmt.Printf("Logged in as @%s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sessions.Clear()
		},
	}
}

func newFeedCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Render the global chronological feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts := feed.Order(a.store.Posts())
			follows := a.store.Follows()
			synthetic := a.store.SyntheticFollowers()
			manual := a.store.ManualVerificationSet()

			shown := 0
			for _, p := range posts {
				if limit > 0 && shown >= limit {
					break
				}
				original, ok := feed.ResolveOriginal(p, a.store.GetPost)
				if !ok {
					fmt.Println("  [content no longer available]")
					shown++
					continue
				}
				author, ok := a.store.GetUser(original.AuthorID)
				if !ok {
					continue
				}
				badge := ""
				if feed.IsVerified(author.ID, follows, synthetic, manual) {
					badge = " ✔"
				}
				prefix := ""
				if p.IsRepost() {
					if reposter, ok := a.store.GetUser(p.AuthorID); ok {
						prefix = fmt.Sprintf("↻ @%s reposted: ", reposter.Username)
					}
				}
				fmt.Printf("@%s%s · %s\n  %s%s\n", author.Username, badge,
					original.CreatedAt.Format("2006-01-02 15:04"), prefix, original.Text)
				shown++
			}
			if err := a.store.LastPersistError(); err != nil {
				fmt.Fprintln(os.Stderr, "Warning:", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum posts to show")
	return cmd
}

func newSuggestionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "Show follow suggestions for the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, err := a.actor()
			if err != nil {
				return err
			}
			for _, s := range feed.Suggestions(actorID, a.store.Users(), a.store.Follows()) {
				fmt.Printf("@%-20s score %.1f\n", s.User.Username, s.Score)
			}
			return nil
		},
	}
}

func newSuggestCmd(a *app) *cobra.Command {
	var topic string
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Generate a post suggestion for a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := suggest.NewGenAIProvider(cmd.Context(), a.cfg.GeminiAPIKey)
			if err != nil {
				return suggest.ErrUnavailable
			}
			text, err := provider.Suggest(cmd.Context(), topic)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic to write about")
	cmd.MarkFlagRequired("topic")
	return cmd
}
