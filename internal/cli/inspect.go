package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlazarev/speakcheck/internal/phonetic"
	"github.com/mlazarev/speakcheck/internal/textnorm"
)

// Debug commands for inspecting the intermediate representations the matcher
// works on.
func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "norm [text]...",
		Short: "Print normalized text and its tokens",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := strings.Join(args, " ")
			out := map[string]any{
				"normalized": textnorm.Normalize(text),
				"tokens":     textnorm.Tokenize(text),
			}
			b, _ := json.Marshal(out)
			fmt.Println(string(b))
		},
	})

	RootCmd.AddCommand(&cobra.Command{
		Use:   "encode [text]...",
		Short: "Print consonant-class codes per word",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := strings.Join(args, " ")
			b, _ := json.Marshal(phonetic.EncodeTokens(text))
			fmt.Println(string(b))
		},
	})

	RootCmd.AddCommand(&cobra.Command{
		Use:   "phones [text]...",
		Short: "Print the coarse phone transcription",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := strings.Join(args, " ")
			b, _ := json.Marshal(phonetic.PhonesFromText(text))
			fmt.Println(string(b))
		},
	})
}
