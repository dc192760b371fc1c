package images

import (
	"context"
	"os"
)

// InlineStore keeps the raw bytes on the owning record. The webserver serves
// them back through the /api/*-image endpoints.
type InlineStore struct{}

func NewInline() *InlineStore { return &InlineStore{} }

func (s *InlineStore) Store(_ context.Context, path, contentType string) (Stored, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stored{}, err
	}
	return Stored{Data: data, ContentType: contentType}, nil
}
