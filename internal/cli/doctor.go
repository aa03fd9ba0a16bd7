package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/doctor"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/ui"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, metric sources and the terminal",
	Long: `Run diagnostics for everything the dashboard depends on: the config file,
each metric read, nvidia-smi and the terminal.

Examples:
  hostdash doctor
  hostdash doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), cmd.OutOrStdout(), cfgFile)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func doctorCommand(ctx context.Context, w io.Writer, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Config errors are reported by the config checks; the rest still run on defaults.
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	checks := collectChecks(configPath, cfg, newProvider(cfg))
	results := doctor.RunAllParallel(ctx, checks)

	if doctorJSON {
		return outputDoctorJSON(w, checks, results)
	}
	outputDoctorText(w, checks, results)
	return nil
}

// collectChecks gathers all diagnostic checks in report order.
func collectChecks(configPath string, cfg *config.Config, p metrics.Provider) []doctor.Check {
	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(configPath)...)
	checks = append(checks, doctor.NewMetricsChecks(p, cfg.Provider.Timeout)...)
	checks = append(checks,
		&doctor.GPUCheck{
			Enabled:  cfg.GPU.Enabled,
			Command:  cfg.GPU.Command,
			Provider: p,
			Timeout:  cfg.GPU.Timeout,
		},
		&doctor.TerminalCheck{Interactive: isInteractive},
	)
	return checks
}

// groupResults pairs results with their category, in doctor.CategoryOrder.
func groupResults(checks []doctor.Check, results []doctor.CheckResult) []CategoryOutput {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		cat := check.Category()
		grouped[cat] = append(grouped[cat], results[i])
	}

	out := make([]CategoryOutput, 0, len(grouped))
	for _, cat := range doctor.CategoryOrder {
		if rs, ok := grouped[cat]; ok {
			out = append(out, CategoryOutput{Name: cat, Results: rs})
		}
	}
	return out
}

func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	output := DoctorOutput{
		Categories: groupResults(checks, results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			AllClear: !doctor.HasIssues(results),
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)
	categoryStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorInfo)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("hostdash Diagnostic Report"))
	fmt.Fprintln(w)

	for _, category := range groupResults(checks, results) {
		fmt.Fprintln(w, categoryStyle.Render(category.Name))
		for _, result := range category.Results {
			symbol, style := ui.SymbolSuccess, successStyle
			switch result.Status {
			case doctor.StatusWarn:
				symbol, style = ui.SymbolWarning, warnStyle
			case doctor.StatusFail:
				symbol, style = ui.SymbolFail, errorStyle
			}

			fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)
			if result.Suggestion != "" && result.Status != doctor.StatusPass {
				fmt.Fprintf(w, "    %s\n", mutedStyle.Render(result.Suggestion))
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	summary := doctor.Summary(results)
	if doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render(ui.SymbolFail), summary)
	} else {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render(ui.SymbolSuccess), summary)
	}
	fmt.Fprintln(w)
}
