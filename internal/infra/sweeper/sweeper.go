package sweeper

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"stagebook/internal/pkg/config"
	"stagebook/internal/pkg/errs"
	"stagebook/internal/usecase/commands"
)

// HoldSweeper persists expiry for overdue holds on a schedule. Reads
// already treat an overdue hold as expired, so the sweep only decides
// how quickly frozen proposals come back.
type HoldSweeper struct {
	cron  *cron.Cron
	holds *commands.HoldCommands
	spec  string
}

func NewHoldSweeper(holds *commands.HoldCommands, cfg config.SweepConfig) *HoldSweeper {
	return &HoldSweeper{
		cron:  cron.New(),
		holds: holds,
		spec:  cfg.HoldExpirySpec,
	}
}

func (s *HoldSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return errs.Wrap(err, "failed to schedule hold expiry sweep")
	}
	s.cron.Start()
	slog.Info("hold expiry sweep scheduled", "spec", s.spec)
	return nil
}

// Stop waits for an in-flight sweep to finish.
func (s *HoldSweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *HoldSweeper) sweep() {
	expired, err := s.holds.ExpireDueHolds(context.Background())
	if err != nil {
		slog.Error("hold expiry sweep failed", "error", err.Error())
		return
	}
	if expired > 0 {
		slog.Info("expired overdue holds", "count", expired)
	}
}
