package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlazarev/speakcheck/internal/deck"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [dump]",
		Short: "Import decks from an export",
		Long:  "Import decks from a prior export. The dump can be a positional arg or piped via stdin.",
		Run:   runImport,
	}

	deckCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	payload := readPayload(args)
	if strings.TrimSpace(payload) == "" {
		exitErr("import", fmt.Errorf("dump is required (positional arg or stdin)"))
	}

	var dumps []deck.DeckDump
	if err := json.Unmarshal([]byte(payload), &dumps); err != nil {
		exitErr("parse dump", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Import(cmd.Context(), dumps)
	if err != nil {
		exitErr("import", err)
	}
	fmt.Printf(`{"imported":%d}`+"\n", n)
}
