package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/dayplan/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reflect [content]",
		Short: "Save the reflection for a day",
		Long: "Save the reflection for a day, replacing any earlier one. Content can be a positional " +
			"arg or piped via stdin. The date defaults to the effective today.",
		Run: runReflect,
	}

	cmd.Flags().String("date", "", "Date YYYY-MM-DD (default: effective today)")
	cmd.Flags().StringP("mood", "m", "", "Mood: great, good, okay, rough")
	cmd.Flags().IntP("rating", "r", 0, "Rating 1-5")

	RootCmd.AddCommand(cmd)
}

func runReflect(cmd *cobra.Command, args []string) {
	date, _ := cmd.Flags().GetString("date")
	mood, _ := cmd.Flags().GetString("mood")
	rating, _ := cmd.Flags().GetInt("rating")

	// Get content: positional arg first, then check stdin
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("reflect", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	_, s, svc := session(cmd)
	defer s.Close()

	if date == "" {
		date = svc.EffectiveToday(cmd.Context()).Date.String()
	}

	r, err := s.PutReflection(cmd.Context(), store.ReflectionParams{
		Date:    date,
		Content: content,
		Mood:    mood,
		Rating:  rating,
	})
	if err != nil {
		exitErr("reflect", err)
	}
	printJSON(r)
}
