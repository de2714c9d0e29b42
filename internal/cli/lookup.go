package cli

import (
	"github.com/spf13/cobra"
)

var assetsUser string

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every asset owner",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

// assetsCmd represents the assets command
var assetsCmd = &cobra.Command{
	Use:   "assets <checksum>",
	Short: "Find assets by content checksum",
	Long: `Find assets whose checksum matches the given hex value.

Examples:
  hasherctl assets 3f786850e387550fdab836ed7e6dc881de23001b
  hasherctl assets 3f786850e387550fdab836ed7e6dc881de23001b --user 6a1c...`,
	Args: cobra.ExactArgs(1),
	RunE: runAssets,
}

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files <checksum>",
	Short: "Find files scanned by the hasher by content checksum",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiles,
}

func init() {
	assetsCmd.Flags().StringVarP(&assetsUser, "user", "u", "", "Only match assets owned by this user")
}

type usersResult struct {
	UserIDs []string `json:"user_ids" yaml:"user_ids"`
	Count   int      `json:"count" yaml:"count"`
}

func runUsers(cmd *cobra.Command, args []string) error {
	ids, err := identity.ListUserIDs(cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, usersResult{UserIDs: ids, Count: len(ids)})
}

func runAssets(cmd *cobra.Command, args []string) error {
	matches, err := identity.FindAssetByChecksum(cmd.Context(), args[0], assetsUser)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, matches)
}

func runFiles(cmd *cobra.Command, args []string) error {
	matches, err := identity.FindExternalFilesByChecksum(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, matches)
}
