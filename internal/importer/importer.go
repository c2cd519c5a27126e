package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"meal-week-planner/internal/ingredient"
	"meal-week-planner/internal/llm"
	"meal-week-planner/internal/metrics"
	"meal-week-planner/internal/recipe"
	"meal-week-planner/internal/shared"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Importer fetches a recipe web page and turns it into a catalog recipe.
type Importer struct {
	textGen      llm.TextGenerator
	recipeRepo   *recipe.Repository
	metricsStore *metrics.Store
}

// extractedRecipe represents the data structured by the AI.
type extractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepTime    string   `json:"prep_time"`
	Servings    string   `json:"servings"`
}

// NewImporter creates a new Importer instance. metricsStore may be nil.
func NewImporter(textGen llm.TextGenerator, recipeRepo *recipe.Repository, metricsStore *metrics.Store) *Importer {
	return &Importer{
		textGen:      textGen,
		recipeRepo:   recipeRepo,
		metricsStore: metricsStore,
	}
}

// ImportURL fetches the URL, extracts the recipe using AI, and saves it to
// the catalog.
func (im *Importer) ImportURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	content, err := im.fetchAndCleanHTML(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["item 1", "item 2", ...],
  "steps": ["Step 1 description", "Step 2 description", ...],
  "prep_time": "e.g. 30 mins",
  "servings": "e.g. 4 people"
}

Page Content:
%s
`, content)

	start := time.Now()
	resp, err := im.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	if im.metricsStore != nil {
		if recErr := im.metricsStore.RecordMeta(shared.AgentMeta{
			AgentName: "Importer",
			Usage:     resp.Usage,
			Latency:   time.Since(start),
		}); recErr != nil {
			log.Printf("Warning: failed to record importer metrics: %v", recErr)
		}
	}

	var extracted extractedRecipe
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if extracted.Title == "" || len(extracted.Ingredients) == 0 {
		return nil, fmt.Errorf("extracted recipe is incomplete (title=%q, %d ingredients)", extracted.Title, len(extracted.Ingredients))
	}

	rec := recipe.Recipe{
		ID:           uuid.New().String(),
		Title:        extracted.Title,
		Instructions: extracted.Steps,
		PrepTime:     extracted.PrepTime,
		Servings:     extracted.Servings,
		SourceURL:    url,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, ing := range extracted.Ingredients {
		rec.Ingredients = append(rec.Ingredients, ingredient.Ingredient{Name: ing})
	}

	if err := im.recipeRepo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}
	return &rec, nil
}

func (im *Importer) fetchAndCleanHTML(url string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
