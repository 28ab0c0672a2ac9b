package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export decks as JSON",
		Run:   runExport,
	}
	cmd.Flags().String("prefix", "", "Only decks whose key starts with this prefix")

	deckCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	prefix, _ := cmd.Flags().GetString("prefix")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	dumps, err := s.ExportAll(cmd.Context(), prefix)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(dumps, "", "  ")
	fmt.Println(string(b))
}
