package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hasherdb/internal/common"
)

// provisionCmd represents the provision command
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create the deletion audit table and trigger",
	Long: `Create the deletion audit table if it is missing and (re)install the
delete trigger on the assets table. Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: runProvision,
}

type provisionResult struct {
	Table   string `json:"table" yaml:"table"`
	Trigger string `json:"trigger" yaml:"trigger"`
	Status  string `json:"status" yaml:"status"`
}

func runProvision(cmd *cobra.Command, args []string) error {
	if err := provisioner.Provision(cmd.Context()); err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat, provisionResult{
		Table:   common.AuditTable,
		Trigger: common.AuditTrigger,
		Status:  "provisioned",
	})
}
