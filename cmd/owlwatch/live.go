package main

import (
	"fmt"

	"github.com/owlwatch/owlwatch/internal/common/output"
	"github.com/owlwatch/owlwatch/internal/livecheck"
	"github.com/spf13/cobra"
)

var liveCmd = &cobra.Command{
	Use:   "live [channel-id...]",
	Short: "Check whether a channel is live right now",
	Long: `Probe each given channel once and print the result. Without arguments the
leagues enabled in the config are probed in order and the first broadcast found
is reported.`,
	Run: runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	prober := newProber()
	ctx := commandContext(cmd)

	if len(args) > 0 {
		for _, id := range args {
			printResult(id, prober.Probe(ctx, id))
		}
		return
	}

	if len(livecheck.EnabledLeagues(cfg)) == 0 {
		output.PrintWarning("No leagues enabled; set enable_owl or enable_owc")
		return
	}

	league, result, ok := prober.ProbeEnabled(ctx, cfg)
	if !ok {
		fmt.Printf("%s no enabled league is live\n", output.FormatResult(result.Kind.String()))
		return
	}
	printResult(league.Name, result)
}

func printResult(name string, r livecheck.Result) {
	line := fmt.Sprintf("%s %s", output.FormatResult(r.Kind.String()), output.FormatChannel(name))
	if r.Found() {
		line += " " + r.URL
	} else if r.Err != nil && verbose {
		line += fmt.Sprintf(" (%v)", r.Err)
	}
	fmt.Println(line)
}
