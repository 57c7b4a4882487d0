package categoryindex

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/protobuf/types/known/structpb"
)

const indexNamespace = "unitmapper-categories"

// Service maintains a vector index of the canonical categories and retrieves
// the nearest candidates for a free-text label, keeping the free-text prompt
// short instead of carrying the whole canonical list.
type Service struct {
	client    *pinecone.Client
	embedder  embeddings.Embedder
	indexName string
}

func NewService(apiKey, openaiAPIKey, indexName string) (*Service, error) {
	log.Printf("[INFO] Initializing category index service")

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithToken(openaiAPIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	service := &Service{
		client:    pc,
		embedder:  embedder,
		indexName: indexName,
	}

	log.Printf("[INFO] Category index service initialized successfully")
	return service, nil
}

// IndexCategories embeds every canonical category and upserts it into the
// index. Safe to rerun; vector IDs are stable slugs of the category names.
func (s *Service) IndexCategories(ctx context.Context, categories []string) error {
	log.Printf("[INFO] Indexing %d canonical categories", len(categories))

	if len(categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, categories)
	if err != nil {
		return fmt.Errorf("failed to embed categories: %w", err)
	}

	idxConn, err := s.connect(ctx)
	if err != nil {
		return err
	}

	var upserts []*pinecone.Vector
	for i, category := range categories {
		metadata, err := structpb.NewStruct(map[string]any{
			"category": category,
		})
		if err != nil {
			return fmt.Errorf("failed to create metadata for category %q: %w", category, err)
		}

		upserts = append(upserts, &pinecone.Vector{
			Id:       categorySlug(category),
			Values:   &vectors[i],
			Metadata: metadata,
		})
	}

	if _, err := idxConn.UpsertVectors(ctx, upserts); err != nil {
		return fmt.Errorf("failed to upsert category vectors: %w", err)
	}

	log.Printf("[INFO] Successfully indexed %d categories", len(upserts))
	return nil
}

// QuerySimilar returns up to topK canonical category names nearest to the
// given label, nearest first.
func (s *Service) QuerySimilar(ctx context.Context, label string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 10
	}

	queryEmbeddings, err := s.embedder.EmbedDocuments(ctx, []string{label})
	if err != nil {
		return nil, fmt.Errorf("failed to embed label: %w", err)
	}

	idxConn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	result, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          queryEmbeddings[0],
		TopK:            uint32(topK),
		IncludeValues:   false,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query category index: %w", err)
	}

	var categories []string
	for _, match := range result.Matches {
		if match.Vector.Metadata == nil {
			continue
		}
		metadata := match.Vector.Metadata.AsMap()
		if category, ok := metadata["category"].(string); ok && category != "" {
			categories = append(categories, category)
		}
	}

	log.Printf("[INFO] Retrieved %d candidate categories for label %q", len(categories), label)
	return categories, nil
}

func (s *Service) connect(ctx context.Context) (*pinecone.IndexConnection, error) {
	idxDesc, err := s.client.DescribeIndex(ctx, s.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: indexNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}

	return idxConn, nil
}

func categorySlug(category string) string {
	slug := strings.ToLower(category)
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
