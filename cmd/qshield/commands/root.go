package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qshield/internal/app"
	"qshield/internal/logging"
	"qshield/internal/state"
)

var (
	home       string
	passphrase string
	backend    string

	wire *app.Wire
	log  *zap.Logger
)

// Execute runs the CLI until ctx is cancelled or the command returns.
func Execute(ctx context.Context) error {
	return execute(ctx, newRoot())
}

// execute runs root and releases whatever PersistentPreRunE built, even when
// the command failed.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if wire != nil {
		if cerr := wire.Close(); err == nil {
			err = cerr
		}
		wire = nil
	}
	if log != nil {
		_ = log.Sync()
		log = nil
	}
	return err
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "qshield",
		Short:         "Quantum-safe federated threat intelligence console",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load(cmd.Flags())
			if err != nil {
				return err
			}
			log, err = logging.New(cfg.Log)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg, log)
			if err != nil {
				return fmt.Errorf("open state in %s: %w", cfg.Home, err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.qshield)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing persisted state")
	root.PersistentFlags().StringVar(&backend, "backend", "", "persistence backend: file, sqlite or memory")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(),
		statusCmd(), participantsCmd(),
		certCmd(), registerCmd(),
		trainCmd(), aggregateCmd(),
		modelCmd(), downloadCmd(),
		auditCmd(),
	)
	return root
}

// dismissModal prints the open modal, if any, and closes it.
func dismissModal(out io.Writer) {
	m := wire.Store.Snapshot().Modal
	if !m.Visible || m.Content == nil {
		return
	}
	fmt.Fprintf(out, "== %s ==\n%s\n", m.Content.Title, m.Content.Body)
	for _, a := range m.Content.Actions {
		fmt.Fprintf(out, "  -> %s (%s)\n", a.Label, a.Href)
	}
	wire.Store.Dispatch(state.HideModal{})
}
