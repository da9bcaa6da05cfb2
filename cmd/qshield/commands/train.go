package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"qshield/internal/domain"
	"qshield/internal/state"
)

const barWidth = 40

// lockedWriter serialises writes from the tick goroutine and the command.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func trainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Run local training to completion (Ctrl-C pauses)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &lockedWriter{w: cmd.OutOrStdout()}

			unsubscribe := wire.Store.Subscribe(func(a state.Action, next domain.State) {
				if _, ok := a.(state.SetTrainingProgress); ok {
					p := next.Training.Progress
					filled := p * barWidth / 100
					fmt.Fprintf(out, "\r[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), p)
				}
			})
			defer unsubscribe()

			run, err := wire.Training.Start(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Job %s started\n", run.JobID)

			select {
			case <-run.Done():
			case <-cmd.Context().Done():
				wire.Training.Pause()
				<-run.Done()
			}
			fmt.Fprintln(out)

			if !run.Completed() {
				fmt.Fprintf(out, "Paused at %d%%\n", wire.Store.Snapshot().Training.Progress)
				return nil
			}
			dismissModal(out)
			return nil
		},
	}
}
