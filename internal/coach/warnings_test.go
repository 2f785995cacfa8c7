package coach

import (
	"testing"

	"alcyxob/fitcoach/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestProfileWarnings(t *testing.T) {
	t.Run("complete profile", func(t *testing.T) {
		w := ProfileWarnings(reference())
		assert.NotNil(t, w)
		assert.Empty(t, w)
	})

	t.Run("empty profile", func(t *testing.T) {
		assert.Equal(t, []string{
			"age missing",
			"weight missing",
			"height missing",
			"gender missing",
			"goal missing",
		}, ProfileWarnings(domain.Profile{}))
	})

	t.Run("negative inputs", func(t *testing.T) {
		p := reference()
		p.Height = -175
		p.Frequency = -1
		assert.Equal(t, []string{"height must be positive", "frequency must be positive"}, ProfileWarnings(p))
	})
}
