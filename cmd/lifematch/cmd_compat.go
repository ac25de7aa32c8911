package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/matcher"
)

// compatCmd prints the compatibility sets for a blood type
var compatCmd = &cobra.Command{
	Use:   "compat [blood-type]",
	Short: "Show which blood types a type can receive from and donate to",
	Long: `Prints both directions of the compatibility table for one blood type.

Example:
  lifematch compat A+
  lifematch compat ab-`,
	Args: cobra.ExactArgs(1),
	RunE: runCompat,
}

func runCompat(cmd *cobra.Command, args []string) error {
	bloodType, ok := domain.ParseBloodType(args[0])
	if !ok {
		return fmt.Errorf("unknown blood type %q (expected one of %s)", args[0], joinTypes(domain.BloodTypes()))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Blood type:       %s\n", bloodType)
	fmt.Fprintf(out, "Can receive from: %s\n", joinTypes(matcher.CompatibleDonorTypes(bloodType)))
	fmt.Fprintf(out, "Can donate to:    %s\n", joinTypes(matcher.CompatibleRecipientTypes(bloodType)))
	return nil
}

func joinTypes(types []domain.BloodType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}
