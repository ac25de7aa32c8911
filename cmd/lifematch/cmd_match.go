package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/matcher"
	"github.com/spec-kit/lifematch-service/internal/seed"
)

var (
	matchBloodType string
	matchDonorFile string
)

// matchCmd filters a donor file for a recipient blood type
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "List available donors compatible with a recipient blood type",
	Long: `Loads donors from a YAML dataset (the embedded sample when --donors is not set)
and prints the available donors whose blood type the recipient can receive.

Example:
  lifematch match --blood-type A+
  lifematch match --blood-type O- --donors donors.yaml`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchBloodType, "blood-type", "b", "", "Recipient blood type")
	matchCmd.Flags().StringVarP(&matchDonorFile, "donors", "d", "", "YAML file with a donors list")
	_ = matchCmd.MarkFlagRequired("blood-type")
}

func runMatch(cmd *cobra.Command, args []string) error {
	bloodType, ok := domain.ParseBloodType(matchBloodType)
	if !ok {
		return fmt.Errorf("unknown blood type %q", matchBloodType)
	}

	var (
		dataset *seed.Dataset
		err     error
	)
	if matchDonorFile == "" {
		dataset, err = seed.Sample()
	} else {
		dataset, err = seed.LoadFile(matchDonorFile)
	}
	if err != nil {
		return fmt.Errorf("load donors: %w", err)
	}

	pool := dataset.DonorModels(time.Now().UTC())
	donors := matcher.FindCompatibleDonors(bloodType, pool)
	if logger != nil {
		logger.Debug("match complete",
			zap.String("blood_type", bloodType.String()),
			zap.Int("pool", len(pool)),
			zap.Int("matched", len(donors)))
	}

	out := cmd.OutOrStdout()
	if len(donors) == 0 {
		fmt.Fprintf(out, "No available donors compatible with %s\n", bloodType)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBLOOD TYPE\tLOCATION\tEMAIL")
	for _, d := range donors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.BloodType, d.Location, d.Email)
	}
	return w.Flush()
}
