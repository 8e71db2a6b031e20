package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"codectx/internal/domain"
	"codectx/internal/usecase"
)

var (
	retrieveQuery    string
	retrieveScenario string
	retrieveJSON     bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve ranked workspace context for a query",
	Long: `Classify the query, gather candidate files, score them, and select the
best set within the token budget.

Examples:
  codectx retrieve -q "why is login throwing a null reference error"
  codectx retrieve -q "review the session handling" --scenario review --json`,
	RunE: runRetrieve,
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
	retrieveCmd.Flags().StringVarP(&retrieveQuery, "query", "q", "", "query text (required)")
	retrieveCmd.Flags().StringVar(&retrieveScenario, "scenario", "", "preset criteria: debugging, review, learning, implementation")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output as JSON")
	retrieveCmd.MarkFlagRequired("query")
}

// retrievedFile is the CLI projection of one selected file.
type retrievedFile struct {
	Path     string  `json:"path"`
	Language string  `json:"language"`
	Score    float64 `json:"score"`
	Tokens   int     `json:"tokens"`
	Matches  int     `json:"matches"`
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	log := newLogger()
	engine, closeCache, err := buildEngine(log)
	if err != nil {
		return err
	}
	defer closeCache()

	var result domain.RetrievalResult
	if retrieveScenario != "" {
		criteria, err := usecase.ScenarioCriteria(usecase.Scenario(retrieveScenario))
		if err != nil {
			return err
		}
		result, err = engine.RetrieveWithCriteria(retrieveQuery, criteria)
		if err != nil {
			return fmt.Errorf("retrieval failed: %w", err)
		}
	} else {
		result, err = engine.Retrieve(retrieveQuery)
		if err != nil {
			return fmt.Errorf("retrieval failed: %w", err)
		}
	}

	if retrieveJSON {
		return printJSON(result)
	}

	fmt.Printf("Intent: %s (priority %s, scope %s)\n", result.Intent.Type, result.Intent.Priority, result.Intent.Scope)
	if !result.Intent.RequiresContext {
		fmt.Println("No workspace context needed for this query.")
		return nil
	}

	fmt.Printf("Scanned %d files in %s; selected %d (%d tokens, efficiency %.2f)\n\n",
		result.Metadata.FilesScanned,
		result.Metadata.Elapsed.Round(time.Millisecond),
		len(result.Selected),
		result.EstimatedTokens,
		result.Metadata.Efficiency,
	)

	for i, sf := range result.Selected {
		fmt.Printf("  [%d] %s (%s, score %.2f, ~%d tokens)\n",
			i+1, sf.File.Path, sf.File.Language, sf.Score, sf.EstimatedTokens())
	}
	if len(result.Rejected) > 0 {
		fmt.Printf("\n%d candidates rejected by threshold or budget\n", len(result.Rejected))
	}
	for _, w := range result.Metadata.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}

func printJSON(result domain.RetrievalResult) error {
	files := make([]retrievedFile, 0, len(result.Selected))
	for _, sf := range result.Selected {
		files = append(files, retrievedFile{
			Path:     sf.File.Path,
			Language: sf.File.Language,
			Score:    sf.Score,
			Tokens:   sf.EstimatedTokens(),
			Matches:  len(sf.Matches),
		})
	}

	out := struct {
		Intent   domain.IntentType     `json:"intent"`
		Selected []retrievedFile       `json:"selected"`
		Tokens   int                   `json:"estimated_tokens"`
		Metadata domain.SearchMetadata `json:"metadata"`
	}{
		Intent:   result.Intent.Type,
		Selected: files,
		Tokens:   result.EstimatedTokens,
		Metadata: result.Metadata,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
