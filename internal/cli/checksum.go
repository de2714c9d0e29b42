package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hasherdb/internal/checksum"
)

// checksumCmd represents the checksum command
var checksumCmd = &cobra.Command{
	Use:         "checksum <hex>",
	Short:       "Validate a checksum and print its canonical forms",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{offline: "true"},
	RunE:        runChecksum,
}

type checksumResult struct {
	Hex      string `json:"hex" yaml:"hex"`
	Bytes    int    `json:"bytes" yaml:"bytes"`
	Postgres string `json:"postgres" yaml:"postgres"`
}

func runChecksum(cmd *cobra.Command, args []string) error {
	sum, err := checksum.ToBinary(args[0])
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat, checksumResult{
		Hex:      checksum.ToHex(sum),
		Bytes:    len(sum),
		Postgres: checksum.PostgresLiteral(sum),
	})
}
