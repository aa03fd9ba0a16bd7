package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/ui"
)

// Snapshot flags
var (
	snapshotCPUInterval time.Duration
	snapshotOutput      string
)

// Snapshot is every metric read once, as printed by `hostdash snapshot`.
type Snapshot struct {
	System     metrics.SystemInfo `yaml:"system"`
	Memory     metrics.MemoryInfo `yaml:"memory"`
	Disk       metrics.DiskInfo   `yaml:"disk"`
	GPU        metrics.GPUInfo    `yaml:"gpu"`
	CPUPercent float64            `yaml:"cpu_percent"`
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print all metrics once as YAML",
	Long: `Read every metric the dashboard shows once and print it as YAML.

Works without a terminal, so it suits scripts and pipes.

Examples:
  hostdash snapshot
  hostdash snapshot --cpu-interval 0
  hostdash snapshot -o metrics.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), cfgFile, debugFlag)
	},
}

func init() {
	snapshotCmd.Flags().DurationVar(&snapshotCPUInterval, "cpu-interval", time.Second,
		"window over which CPU usage is measured (0 reports usage since the last read)")
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(snapshotCmd)
}

func snapshotCommand(ctx context.Context, stdout io.Writer, configPath string, debug bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, cleanup, err := loadRuntime(configPath, debug)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, cfg.Provider.Timeout+snapshotCPUInterval)
	defer cancel()

	snap, err := collectSnapshot(ctx, newProvider(cfg), snapshotCPUInterval)
	if err != nil {
		return err
	}

	if snapshotOutput == "" {
		return writeSnapshot(stdout, snap)
	}

	f, err := os.Create(snapshotOutput)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create "+snapshotOutput,
			"Check the directory exists and is writable")
	}
	defer f.Close()
	if err := writeSnapshot(f, snap); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, ui.FormatSuccess("Snapshot written to "+snapshotOutput))
	return nil
}

// collectSnapshot reads every metric once. CPU usage is measured across
// cpuInterval: the counters are primed, then read again after the wait.
func collectSnapshot(ctx context.Context, p metrics.Provider, cpuInterval time.Duration) (Snapshot, error) {
	log := logger.NewEnvLogger("[snapshot]")
	var snap Snapshot
	var err error

	if cpuInterval > 0 {
		if _, err := p.CPUPercent(ctx); err != nil {
			return Snapshot{}, err
		}
	}

	if snap.System, err = p.SystemInfo(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Memory, err = p.MemoryInfo(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Disk, err = p.DiskInfo(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.GPU, err = p.GPUInfo(ctx); err != nil {
		return Snapshot{}, err
	}

	if cpuInterval > 0 {
		log.Debug("measuring cpu over %s", cpuInterval)
		select {
		case <-ctx.Done():
			return Snapshot{}, errors.WrapWithCode(ctx.Err(), errors.ErrProvider,
				"Timed out measuring CPU usage",
				"Try a shorter --cpu-interval")
		case <-time.After(cpuInterval):
		}
	}
	if snap.CPUPercent, err = p.CPUPercent(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// writeSnapshot encodes the snapshot as YAML.
func writeSnapshot(w io.Writer, snap Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Failed to encode snapshot",
			"")
	}
	if err := enc.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Failed to write snapshot",
			"")
	}
	return nil
}
