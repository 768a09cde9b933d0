package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini embedding model used when none is configured.
const DefaultModel = "text-embedding-004"

// maxBatchSize is the most texts Gemini accepts in one batch request.
const maxBatchSize = 100

// GeminiEmbedder implements Embedder with the Gemini embedding API.
type GeminiEmbedder struct {
	client      *genai.Client
	model       string
	batchSize   int
	concurrency int
}

// NewGeminiEmbedder creates a Gemini embedder. An empty model uses DefaultModel.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client:      client,
		model:       model,
		batchSize:   maxBatchSize,
		concurrency: 4,
	}, nil
}

// Model returns the embedding model name.
func (g *GeminiEmbedder) Model() string {
	return g.model
}

// Embed embeds texts in batches, running up to four batch requests at once.
func (g *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	em.TaskType = genai.TaskTypeSemanticSimilarity

	out := make([][]float32, len(texts))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for _, b := range batches(len(texts), g.batchSize) {
		eg.Go(func() error {
			batch := em.NewBatch()
			for _, text := range texts[b.start:b.end] {
				batch.AddContent(genai.Text(text))
			}
			resp, err := em.BatchEmbedContents(egCtx, batch)
			if err != nil {
				return fmt.Errorf("failed to embed batch %d-%d: %w", b.start, b.end, err)
			}
			if len(resp.Embeddings) != b.end-b.start {
				return fmt.Errorf("batch %d-%d returned %d embeddings", b.start, b.end, len(resp.Embeddings))
			}
			for i, e := range resp.Embeddings {
				out[b.start+i] = e.Values
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the underlying client.
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}

type span struct{ start, end int }

// batches splits n items into consecutive spans of at most size items.
func batches(n, size int) []span {
	if size <= 0 {
		size = n
	}
	var out []span
	for start := 0; start < n; start += size {
		out = append(out, span{start: start, end: min(start+size, n)})
	}
	return out
}
