package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scholarmatch/internal/models"

	"go.uber.org/zap"
)

// Generator produces free-form text for a prompt. LLMService is the
// production implementation; tests substitute stubs.
type Generator interface {
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatResult carries a chat answer plus the retrieval evidence behind it.
type ChatResult struct {
	Response       string
	MatchedNames   []string
	UsedGeneration bool
}

// ChatService answers natural-language questions about the catalog.
// Every answer is grounded in retrieval: records are selected first by
// TF-IDF relevance, narrowed by constraints detected in the query, and
// only then passed to the generator. When generation is unavailable or
// fails, a deterministic template over the same records is returned, so
// the endpoint degrades but never errors out because of the LLM.
type ChatService struct {
	engine  *Engine
	llm     Generator
	topK    int
	timeout time.Duration
	logger  *zap.Logger
}

func NewChatService(engine *Engine, llm Generator, topK int, timeout time.Duration, logger *zap.Logger) *ChatService {
	if topK <= 0 {
		topK = 5
	}
	return &ChatService{
		engine:  engine,
		llm:     llm,
		topK:    topK,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *ChatService) Chat(ctx context.Context, query string) (ChatResult, error) {
	st, err := s.engine.state()
	if err != nil {
		return ChatResult{}, err
	}

	// Over-fetch so that constraint filtering still leaves enough
	// candidates, then cut back to topK.
	matches := st.retriever.Retrieve(query, s.topK*2)
	prefs := st.retriever.DetectFilters(query)

	records := make([]models.Record, 0, len(matches))
	for _, m := range matches {
		r := st.store.At(m.Pos)
		if !prefs.IsZero() && !prefs.Matches(r) {
			continue
		}
		records = append(records, r)
		if len(records) == s.topK {
			break
		}
	}

	if len(records) == 0 {
		return ChatResult{
			Response:       s.noMatchesResponse(st.store.Kind()),
			MatchedNames:   []string{},
			UsedGeneration: false,
		}, nil
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Attributes().Name
	}

	if s.llm != nil && s.llm.Available() {
		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		answer, genErr := s.llm.Generate(genCtx, s.buildPrompt(query, records))
		if genErr == nil {
			return ChatResult{Response: answer, MatchedNames: names, UsedGeneration: true}, nil
		}
		s.logger.Warn("Generation failed, serving fallback response",
			zap.Error(genErr),
			zap.Int("matched_records", len(records)))
	}

	return ChatResult{
		Response:       s.fallbackResponse(records),
		MatchedNames:   names,
		UsedGeneration: false,
	}, nil
}

func (s *ChatService) noMatchesResponse(kind models.Kind) string {
	if kind == models.KindUniversity {
		return "I couldn't find universities matching your query. " +
			"Try being more specific about country, ranking, or university type."
	}
	return "I couldn't find scholarships matching your query. " +
		"Try being more specific about country, field of study, or scholarship type."
}

func (s *ChatService) buildPrompt(query string, records []models.Record) string {
	var b strings.Builder
	b.WriteString("Based on this data:\n\n")
	b.WriteString(formatContext(records))
	b.WriteString("\n\nUser question: ")
	b.WriteString(query)
	b.WriteString("\n\nPlease provide a helpful response about these records. " +
		"Include specific details like amounts, providers, and eligibility when relevant.")
	return b.String()
}

// fallbackResponse renders the matched records as a numbered plain-text
// list. It is a pure function of the records, so the same query against
// the same catalog always yields the same answer.
func (s *ChatService) fallbackResponse(records []models.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d relevant result(s):\n", len(records))
	for i, r := range records {
		b.WriteString("\n")
		writeRecordSummary(&b, i+1, r)
	}
	return b.String()
}

// formatContext renders the retrieved records for the generation prompt,
// one numbered block per record with the full attribute set.
func formatContext(records []models.Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch v := r.(type) {
		case *models.Scholarship:
			renewable := "one-time"
			if v.Renewable {
				renewable = "renewable annually"
			}
			fmt.Fprintf(&b, "%d. %s\n   Provider: %s\n   Amount: $%.0f (%s)\n   Country: %s\n   Type: %s\n   Field: %s\n   Level: %s\n   Deadline: %s\n   Description: %s",
				i+1, v.Name, v.Provider, v.Amount, renewable, v.Country, v.Type, v.Field, v.Level, v.Deadline, v.Description)
		case *models.University:
			fmt.Fprintf(&b, "%d. %s\n   Country: %s\n   City: %s\n   Type: %s\n   Ranking: %d\n   Students: %d\n   Founded: %d\n   Description: %s",
				i+1, v.Name, v.Country, v.City, v.Type, v.Ranking, v.Students, v.Founded, v.Description)
		}
	}
	return b.String()
}

func writeRecordSummary(b *strings.Builder, n int, r models.Record) {
	switch v := r.(type) {
	case *models.Scholarship:
		renewable := ""
		if v.Renewable {
			renewable = " (renewable)"
		}
		fmt.Fprintf(b, "%d. %s\n   Amount: $%.0f%s\n   Provider: %s\n   Country: %s\n   Field: %s | Level: %s\n   Type: %s\n",
			n, v.Name, v.Amount, renewable, v.Provider, v.Country, v.Field, v.Level, v.Type)
	case *models.University:
		fmt.Fprintf(b, "%d. %s\n   Country: %s | City: %s\n   Ranking: #%d\n   Students: %d\n   Type: %s\n",
			n, v.Name, v.Country, v.City, v.Ranking, v.Students, v.Type)
	}
}
