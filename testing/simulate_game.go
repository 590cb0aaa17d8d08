package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/tatianab/memory-dive/internal/config"
	"github.com/tatianab/memory-dive/internal/content"
	"github.com/tatianab/memory-dive/internal/engine"
	"github.com/tatianab/memory-dive/internal/models"
)

const maxTurns = 25

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.OracleEnabled() {
		log.Fatalf("GEMINI_API_KEY is required for the simulated player")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	catalog, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load story table: %v", err)
	}

	// The engine stays offline; only the player is an LLM.
	eng, err := engine.NewEngine(catalog, engine.WithLogger(logger), engine.WithSeed(cfg.Seed))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Close()

	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.Model)

	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)

		state := eng.Snapshot()
		if turn%5 == 0 {
			res := eng.Retrace()
			fmt.Printf("Retrace: success=%v reason=%s keywords=%v\n", res.Success, res.Reason, res.Keywords)
			for _, kw := range res.Keywords {
				_, _ = eng.CollectKeyword(kw)
			}
			continue
		}

		query := getPlayerQuery(ctx, playerModel, catalog, state)
		fmt.Printf("Player Query: %s\n", query)

		outcome, err := eng.Submit(ctx, query)
		if err != nil {
			fmt.Printf("Error processing query: %v\n", err)
			break
		}
		fmt.Printf("Result: [%s] %s\n", outcome.Resolution.Kind, outcome.Response)
		fmt.Printf("Valid=%v Flags=%v\n", outcome.Valid, outcome.Flags)

		state = eng.Snapshot()
		fmt.Printf("Stability=%d Nodes=%v Archives=%v\n\n", state.SystemStability, state.UnlockedNodeIDs, state.UnlockedArchiveIDs)

		if len(state.UnlockedNodeIDs) == len(catalog.Nodes) {
			fmt.Println("All confessions unlocked.")
			break
		}
	}
}

func getPlayerQuery(ctx context.Context, model *genai.GenerativeModel, catalog *content.Catalog, state models.GameState) string {
	var known []string
	for id := range state.Collected() {
		known = append(known, catalog.Label(id))
	}
	for _, id := range state.UnlockedNodeIDs {
		for _, kw := range catalog.Revealed(id) {
			known = append(known, catalog.Label(kw))
		}
	}

	historyText := ""
	for _, entry := range state.LastHistory(12) {
		historyText += fmt.Sprintf("[%s] %s\n", entry.Type, entry.Content)
	}

	prompt := fmt.Sprintf(`You are playing a memory-diving investigation game. You search a memory index
by typing short keyword queries. A memory unlocks when a query names a place and
what happened there (or a year and a person), using ONLY known keywords and no
filler words.

Known keywords: %s

Recent log:
%s

What do you search next? Return ONLY the query, two or three keywords separated by spaces.`,
		strings.Join(known, ", "),
		historyText,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "maine small_bank"
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "ohio"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
