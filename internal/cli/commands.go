package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"roster/internal/config"
	"roster/internal/orchestrator"
	"roster/internal/release"
	"roster/internal/roster"
	"roster/internal/shell"
	"roster/internal/store"
	"roster/internal/watcher"
)

// shellCmd returns the shell command
func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive command loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) error {
	ctx := cmd.Context()

	p, err := a.openStore()
	if err != nil {
		return err
	}
	defer p.Close()

	doc := store.LoadOrEmpty(ctx, p)
	session := shell.NewSession(cmd.InOrStdin(), a.out, p, doc, gitReleaser{cfg: a.cfg.Release})
	return session.Run(ctx)
}

// addCmd returns the add command
func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <msr|qt> <name...>",
		Short: "Add a name to a list, moving it out of the other one",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := roster.ParseCategory(args[0])
			if !ok {
				return &roster.Error{Type: roster.UnknownCategory, Category: roster.Category(args[0])}
			}
			return a.mutate(cmd.Context(), func(doc *roster.Document) (string, error) {
				change, err := doc.Add(category, strings.Join(args[1:], " "))
				if err != nil {
					return "", err
				}
				return shell.DescribeChange(change), nil
			})
		},
	}
}

// removeCmd returns the remove command
func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name...>",
		Short: "Remove a name from every list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), func(doc *roster.Document) (string, error) {
				removal, err := doc.Remove(strings.Join(args, " "))
				if err != nil {
					return "", err
				}
				return shell.DescribeRemoval(removal), nil
			})
		},
	}
}

// mutate loads the document, applies fn and saves the result.
func (a *app) mutate(ctx context.Context, fn func(*roster.Document) (string, error)) error {
	p, err := a.openStore()
	if err != nil {
		return err
	}
	defer p.Close()

	doc := store.LoadOrEmpty(ctx, p)
	msg, err := fn(doc)
	if err != nil {
		return err
	}
	a.out.Info("%s", msg)

	if err := p.Save(ctx, doc); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	a.out.Verbose("Saved %s", p.Location())
	return nil
}

// organizeCmd returns the organize command
func organizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Remove duplicates and sort both lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, err := cmd.Flags().GetBool("watch")
			if err != nil {
				return fmt.Errorf("failed to get watch flag: %w", err)
			}
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return fmt.Errorf("failed to get dry-run flag: %w", err)
			}

			if watch {
				if dryRun {
					return fmt.Errorf("--watch and --dry-run cannot be combined")
				}
				return a.watch(cmd.Context())
			}
			return a.organize(cmd.Context(), dryRun)
		},
	}

	cmd.Flags().Bool("watch", false, "keep running and organize after every change to the document")
	cmd.Flags().Bool("dry-run", false, "report what would change without saving")
	return cmd
}

func (a *app) organize(ctx context.Context, dryRun bool) error {
	p, err := a.openStore()
	if err != nil {
		return err
	}
	defer p.Close()

	summary, err := orchestrator.Organize(ctx, p, orchestrator.Options{DryRun: dryRun})
	if err != nil {
		return err
	}
	a.out.Info("%s", summary.PrintSummary())
	return nil
}

func (a *app) watch(ctx context.Context) error {
	if a.cfg.Store.Driver != store.DriverFile {
		return fmt.Errorf("watch mode needs the %s driver, not %s", store.DriverFile, a.cfg.Store.Driver)
	}

	fs := store.NewFileStore(afero.NewOsFs(), a.cfg.Store.Path)
	wcfg := &watcher.WatchConfig{Debounce: time.Duration(a.cfg.Watch.DebounceMs) * time.Millisecond}

	summary, err := orchestrator.Watch(ctx, fs, wcfg, a.out)
	if err != nil {
		return err
	}
	a.out.Info("Stopped after %d runs (%d failed) in %s", summary.Runs, summary.Failures, summary.Duration.Round(time.Millisecond))
	return nil
}

// pushCmd returns the push command
func pushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Commit the roster as the next version and push it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := gitReleaser{cfg: a.cfg.Release}.Release(cmd.Context())
			if err != nil {
				return err
			}
			a.out.Info("%s -> %s", release.Tag(result.From), release.Tag(result.To))
			a.out.Info("Successfully pushed %s", release.Tag(result.To))
			return nil
		},
	}
}

func (a *app) openStore() (store.Persister, error) {
	p, err := store.Open(a.cfg.Store.Driver, a.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return p, nil
}

// gitReleaser opens the repository only when a release is requested, so
// the other commands work outside a git checkout.
type gitReleaser struct {
	cfg config.ReleaseConfig
}

func (g gitReleaser) Release(ctx context.Context) (*release.Result, error) {
	repo, err := release.OpenGitRepository(g.cfg.RepoDir, g.cfg.Remote, release.Author{
		Name:  g.cfg.AuthorName,
		Email: g.cfg.AuthorEmail,
	})
	if err != nil {
		return nil, err
	}
	return release.NewReleaser(repo).Release(ctx)
}
