package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlazarev/speakcheck/internal/match"
)

func init() {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Check a transcript against an expected answer",
	}

	matchCmd.AddCommand(&cobra.Command{
		Use:   "word [expected] [heard]",
		Short: "Check a single expected word",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printMatch(args[0], args[1], match.MatchWord(args[0], args[1]))
		},
	})

	matchCmd.AddCommand(&cobra.Command{
		Use:   "example [expected] [heard]",
		Short: "Check a whole expected phrase",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printMatch(args[0], args[1], match.MatchExample(args[0], args[1]))
		},
	})

	matchCmd.AddCommand(&cobra.Command{
		Use:   "score [expected] [heard]",
		Short: "Print the raw pronunciation confidence",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			out := map[string]any{
				"expected": args[0],
				"heard":    args[1],
				"score":    match.ScorePronunciation(args[0], args[1]),
			}
			b, _ := json.Marshal(out)
			fmt.Println(string(b))
		},
	})

	suggestCmd := &cobra.Command{
		Use:   "suggest [heard] [candidate]...",
		Short: "Pick which candidate answer the learner most likely said",
		Args:  cobra.MinimumNArgs(2),
		Run:   runSuggest,
	}
	matchCmd.AddCommand(suggestCmd)

	RootCmd.AddCommand(matchCmd)
}

func printMatch(expected, heard string, ok bool) {
	out := map[string]any{
		"expected": expected,
		"heard":    heard,
		"match":    ok,
		"score":    match.ScorePronunciation(expected, heard),
	}
	b, _ := json.Marshal(out)
	fmt.Println(string(b))
}

func runSuggest(cmd *cobra.Command, args []string) {
	opts := []match.SuggestOption{}
	if cfg != nil {
		opts = append(opts,
			match.WithPhoneticThreshold(cfg.Suggest.PhoneticThreshold),
			match.WithFuzzyThreshold(cfg.Suggest.FuzzyThreshold),
		)
	}
	s := match.NewSuggester(opts...)

	best, confidence, ok := s.Suggest(args[0], args[1:])
	out := map[string]any{
		"heard":      args[0],
		"suggestion": best,
		"confidence": confidence,
		"matched":    ok,
	}
	b, _ := json.Marshal(out)
	fmt.Println(string(b))
}
