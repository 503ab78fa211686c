package cartcookie

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/services"
	"go.uber.org/zap"
)

// Store keeps a cart snapshot in the request's signed cookie
type Store struct {
	codec *Codec
	ctx   *gin.Context
}

// NewStore binds the codec to one request
func NewStore(codec *Codec, ctx *gin.Context) *Store {
	return &Store{codec: codec, ctx: ctx}
}

// Load returns the snapshot, or "" when the cookie is missing or tampered with
func (s *Store) Load() (string, error) {
	payload, ok := s.codec.Get(s.ctx)
	if !ok {
		return "", nil
	}
	return payload, nil
}

// Save writes the snapshot. An empty cart removes the cookie.
func (s *Store) Save(snapshot string) error {
	if snapshot == "" || snapshot == "[]" {
		s.codec.Clear(s.ctx)
		return nil
	}

	if err := s.codec.Set(s.ctx, snapshot); err != nil {
		if errors.Is(err, ErrTooLarge) {
			zap.L().Info("Rejected oversized cart", zap.Int("snapshot_bytes", len(snapshot)))
			return services.ValidationError("CART_TOO_LARGE",
				"Cart is too large; remove some items before adding more", nil)
		}
		return err
	}
	return nil
}
