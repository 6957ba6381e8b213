package ai

import "context"

// Gateway binds the OpenAI-compatible client to its configured models so
// services depend on a config-free interface.
type Gateway struct {
	client *OpenAICompatibleClient
	emb    EmbeddingConfig
	chat   ChatConfig
}

func NewGateway(emb EmbeddingConfig, chat ChatConfig) *Gateway {
	return &Gateway{
		client: NewOpenAICompatibleClient(),
		emb:    emb,
		chat:   chat,
	}
}

func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	return g.client.Embed(ctx, g.emb, text)
}

func (g *Gateway) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return g.client.EmbedBatch(ctx, g.emb, texts)
}

func (g *Gateway) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	return g.client.Complete(ctx, g.chat, messages)
}

func (g *Gateway) StreamComplete(ctx context.Context, messages []ChatMessage, onChunk func(string) error) (string, error) {
	return g.client.StreamComplete(ctx, g.chat, messages, onChunk)
}
