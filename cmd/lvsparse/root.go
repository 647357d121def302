// SPDX-License-Identifier: MIT

package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lvsparse",
		Short: "Compare dense and sparse matrix backends on time and memory.",
		Long: `Runs the same generated workload on the dense, hash-indexed and ordered
matrix backends, records duration and tracked memory per operation, and
renders the records as charts.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if getFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	root.AddCommand(newRunCmd(), newPlotCmd())

	return root
}
