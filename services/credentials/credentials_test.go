package credentials

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("ReturnsSeededToken", func(t *testing.T) {
		store := NewStore("xoxb-initial")

		assert.Equal(t, "xoxb-initial", store.BotToken())
	})

	t.Run("UpdateReplacesToken", func(t *testing.T) {
		store := NewStore("xoxb-initial")

		store.UpdateBotToken("xoxb-rotated")

		assert.Equal(t, "xoxb-rotated", store.BotToken())
	})

	t.Run("ConcurrentReadersSeeConsistentValue", func(t *testing.T) {
		store := NewStore("xoxb-initial")

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token := store.BotToken()
				assert.Contains(t, []string{"xoxb-initial", "xoxb-rotated"}, token)
			}()
		}
		store.UpdateBotToken("xoxb-rotated")
		wg.Wait()

		assert.Equal(t, "xoxb-rotated", store.BotToken())
	})
}
