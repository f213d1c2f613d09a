package embedding

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/sync/singleflight"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/util"
)

// OpenAIEmbeddingService implements the domain.EmbeddingService interface
// using OpenAI. Embeddings are cached by text hash, and singleflight
// collapses concurrent requests for the same text into one API call.
type OpenAIEmbeddingService struct {
	embedder embeddings.Embedder
	cache    domain.Cache
	cacheTTL time.Duration
	sfGroup  singleflight.Group
}

// NewOpenAIEmbeddingService creates a new OpenAIEmbeddingService. The
// cache is optional; without it every call reaches the API.
func NewOpenAIEmbeddingService(apiKey, modelName string, embeddingCache domain.Cache, cacheTTL time.Duration) (*OpenAIEmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		modelName = "text-embedding-ada-002"
	}

	llm, err := openaiLLM.New(
		openaiLLM.WithToken(apiKey),
		openaiLLM.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI LLM client for embedder: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic embedder from OpenAI LLM: %w", err)
	}

	return &OpenAIEmbeddingService{
		embedder: embedder,
		cache:    embeddingCache,
		cacheTTL: cacheTTL,
	}, nil
}

// Generate creates an embedding for the given text, consulting the cache
// first and populating it on a miss.
func (s *OpenAIEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}

	cacheKey := cache.GenerateCacheKey("embedding", "openai", util.HashString(text))

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			if vec, decodeErr := decodeEmbedding(cached); decodeErr == nil {
				return vec, nil
			}
			// A corrupt entry is dropped and regenerated.
			_ = s.cache.Delete(ctx, cacheKey)
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		vec, fetchErr := s.embedder.EmbedQuery(ctx, text)
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to generate embedding using OpenAI: %w", fetchErr)
		}
		if s.cache != nil {
			if encoded, encodeErr := encodeEmbedding(vec); encodeErr == nil {
				_ = s.cache.Set(ctx, cacheKey, encoded, s.cacheTTL)
			}
		}
		return vec, nil
	})
	if err != nil {
		return nil, err
	}

	vec, ok := res.([]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for openai embedding: %T", res)
	}
	return vec, nil
}

func encodeEmbedding(vec []float32) (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(vec); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodeEmbedding(data string) ([]float32, error) {
	var vec []float32
	if err := gob.NewDecoder(bytes.NewBufferString(data)).Decode(&vec); err != nil {
		return nil, err
	}
	return vec, nil
}

var _ domain.EmbeddingService = (*OpenAIEmbeddingService)(nil)
