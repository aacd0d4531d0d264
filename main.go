// main.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------

// Command gosad computes the self-consistent field of spherically
// averaged atoms and searches for their lowest-energy configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gosad",
	Short: "SCF for spherically averaged atoms",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run input.yaml",
	Short: "Search the lowest configuration of the atom described in input.yaml",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalculation,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "gosad", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every SCF iteration")
	rootCmd.AddCommand(runCmd, versionCmd)
}

func runCalculation(cmd *cobra.Command, args []string) error {
	inpFname := args[0]
	in, lines, err := ReadInput(inpFname)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	log := logger.With(zap.String("run", runID))
	log.Info("starting gosad", zap.String("input", inpFname), zap.String("output", in.Output.Report))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	calc, err := Run(ctx, runID, in, log)
	if err != nil {
		return err
	}
	if err := calc.WriteOutputs(lines); err != nil {
		return err
	}

	best := calc.Result.Best
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s  E = %.10f a.u.\n", in.Element, best.Key(), best.Econf)
	memDebug(log)
	log.Info("exiting gosad")
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
