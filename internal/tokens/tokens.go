// Package tokens estimates model token counts for prompt content.
package tokens

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tiktoken-go/tokenizer"
)

// Counter counts tokens with the cl100k_base encoding. If the codec cannot
// be loaded it falls back to a four-bytes-per-token estimate.
type Counter struct {
	once  sync.Once
	codec tokenizer.Codec
}

// NewCounter creates a lazily initialized counter.
func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) load() {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		log.Warn().Err(err).Msg("Tokenizer unavailable, using byte estimate")
		return
	}
	c.codec = codec
}

// Count returns the token count of text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	c.once.Do(c.load)
	if c.codec != nil {
		ids, _, err := c.codec.Encode(text)
		if err == nil {
			return len(ids)
		}
		log.Debug().Err(err).Msg("Token encode failed, using byte estimate")
	}
	return Estimate(text)
}

// Estimate approximates a token count from byte length.
func Estimate(text string) int {
	return (len(text) + 3) / 4
}
