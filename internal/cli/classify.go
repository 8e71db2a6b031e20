package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"codectx/internal/adapter/intent"
)

var (
	classifyQuery string
	classifyJSON  bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show the intent verdict for a query without retrieving",
	Long: `Run only the intent classifier and print its verdict: intent type,
whether context is needed, and the budget configuration that retrieval
would use.

Examples:
  codectx classify -q "hi there"
  codectx classify -q "why is the login function throwing an error" --json`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyQuery, "query", "q", "", "query text (required)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output as JSON")
	classifyCmd.MarkFlagRequired("query")
}

func runClassify(cmd *cobra.Command, args []string) error {
	verdict := intent.NewClassifier().Classify(classifyQuery)

	if classifyJSON {
		data, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Intent:    %s\n", verdict.Type)
	fmt.Printf("Context:   %v\n", verdict.RequiresContext)
	fmt.Printf("Priority:  %s\n", verdict.Priority)
	fmt.Printf("Scope:     %s\n", verdict.Scope)
	if verdict.RequiresContext {
		fmt.Printf("MaxFiles:  %d\n", verdict.Config.MaxFiles)
		fmt.Printf("MinScore:  %.2f\n", verdict.Config.MinRelevanceScore)
		if verdict.Config.SearchStrategy != "" {
			fmt.Printf("Strategy:  %s\n", verdict.Config.SearchStrategy)
		}
		if len(verdict.Config.PriorityFileGlobs) > 0 {
			fmt.Printf("Priority globs: %v\n", verdict.Config.PriorityFileGlobs)
		}
		fmt.Printf("Sources:   %v\n", verdict.Sources)
	}
	return nil
}
