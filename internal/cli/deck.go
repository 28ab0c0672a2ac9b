package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlazarev/speakcheck/internal/deck"
	"github.com/mlazarev/speakcheck/internal/lesson"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage local review decks",
}

func init() {
	augment := &cobra.Command{
		Use:   "augment [script]",
		Short: "Merge a fresh lesson script with the review decks",
		Long:  "Merge a freshly generated lesson script with the persisted review decks. The script can be a positional arg or piped via stdin. Prints the augmented script.",
		Run:   runAugment,
	}
	augment.Flags().StringP("user", "u", "", "User id (required)")
	augment.Flags().StringP("level", "l", "a1", "Course level")
	augment.Flags().String("lang", "en", "Course language")
	augment.MarkFlagRequired("user")
	deckCmd.AddCommand(augment)

	review := &cobra.Command{
		Use:   "review [task]",
		Short: "Record a completed exercise task",
		Long:  "Record that the learner completed a task. The task JSON can be a positional arg or piped via stdin.",
		Run:   runReview,
	}
	review.Flags().StringP("kind", "k", "constructor", "Task kind: constructor or find-mistake")
	review.Flags().StringP("user", "u", "", "User id (required)")
	review.Flags().StringP("level", "l", "a1", "Course level")
	review.Flags().String("lang", "en", "Course language")
	review.MarkFlagRequired("user")
	deckCmd.AddCommand(review)

	list := &cobra.Command{
		Use:   "list",
		Short: "List the items of one deck",
		Run:   runDeckList,
	}
	list.Flags().StringP("kind", "k", "constructor", "Task kind: constructor or find-mistake")
	list.Flags().StringP("user", "u", "", "User id (required)")
	list.Flags().StringP("level", "l", "a1", "Course level")
	list.Flags().String("lang", "en", "Course language")
	list.MarkFlagRequired("user")
	deckCmd.AddCommand(list)

	RootCmd.AddCommand(deckCmd)
}

// readPayload returns the positional arg if present, otherwise stdin.
func readPayload(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return string(b)
	}
	return ""
}

func deckKeyFlags(cmd *cobra.Command) (kind deck.Kind, user, level, lang string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	user, _ = cmd.Flags().GetString("user")
	level, _ = cmd.Flags().GetString("level")
	lang, _ = cmd.Flags().GetString("lang")

	switch kindStr {
	case "constructor":
		kind = deck.KindConstructor
	case "find-mistake":
		kind = deck.KindFindMistake
	default:
		exitErr("deck", fmt.Errorf("unknown kind %q (use constructor or find-mistake)", kindStr))
	}
	return kind, user, level, lang
}

func runAugment(cmd *cobra.Command, args []string) {
	payload := readPayload(args)
	if strings.TrimSpace(payload) == "" {
		exitErr("augment", fmt.Errorf("script is required (positional arg or stdin)"))
	}

	user, _ := cmd.Flags().GetString("user")
	level, _ := cmd.Flags().GetString("level")
	lang, _ := cmd.Flags().GetString("lang")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	script := lesson.ParseScript([]byte(payload))
	augmented, changed := newManager(s).AugmentScript(cmd.Context(), script, user, level, lang)

	out := map[string]any{
		"changed": changed,
		"script":  augmented,
	}
	b, _ := json.Marshal(out)
	fmt.Println(string(b))
}

func runReview(cmd *cobra.Command, args []string) {
	payload := readPayload(args)
	if strings.TrimSpace(payload) == "" {
		exitErr("review", fmt.Errorf("task is required (positional arg or stdin)"))
	}

	kind, user, level, lang := deckKeyFlags(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	mgr := newManager(s)
	switch kind {
	case deck.KindConstructor:
		var task lesson.ConstructorTask
		if err := json.Unmarshal([]byte(payload), &task); err != nil {
			exitErr("parse task", err)
		}
		mgr.RecordConstructorReview(cmd.Context(), user, level, lang, task)
	case deck.KindFindMistake:
		var task lesson.FindMistakeTask
		if err := json.Unmarshal([]byte(payload), &task); err != nil {
			exitErr("parse task", err)
		}
		mgr.RecordFindMistakeReview(cmd.Context(), user, level, lang, task)
	}
	fmt.Println(`{"recorded":true}`)
}

func runDeckList(cmd *cobra.Command, args []string) {
	kind, user, level, lang := deckKeyFlags(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	items, err := s.Load(cmd.Context(), deck.Key{Kind: kind, UserID: user, Level: level, Lang: lang})
	if err != nil {
		exitErr("list", err)
	}
	if items == nil {
		items = []deck.Item{}
	}
	b, _ := json.MarshalIndent(items, "", "  ")
	fmt.Println(string(b))
}
