/* prompt_test.go
 * Contains unit tests for the are-you-sure prompt registry
 * Authors: Zachary Bower
 */

package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromptRegistry_ConfirmedByInvoker(t *testing.T) {
	registry := newPromptRegistry()
	nonce := registry.register("user1")

	go func() {
		assert.Equal(t, promptResolved, registry.resolve(nonce, "user1", true))
	}()

	result := registry.wait(nonce, time.Second)
	assert.Equal(t, PromptConfirmed, result)
}

func TestPromptRegistry_DeclinedByInvoker(t *testing.T) {
	registry := newPromptRegistry()
	nonce := registry.register("user1")

	go registry.resolve(nonce, "user1", false)

	result := registry.wait(nonce, time.Second)
	assert.Equal(t, PromptDeclined, result)
}

func TestPromptRegistry_WrongUserDoesNotResolve(t *testing.T) {
	registry := newPromptRegistry()
	nonce := registry.register("user1")

	assert.Equal(t, promptWrongUser, registry.resolve(nonce, "user2", true))

	// the prompt is still pending for the invoker
	go registry.resolve(nonce, "user1", true)
	result := registry.wait(nonce, time.Second)
	assert.Equal(t, PromptConfirmed, result)
}

func TestPromptRegistry_Timeout(t *testing.T) {
	registry := newPromptRegistry()
	nonce := registry.register("user1")

	result := registry.wait(nonce, 10*time.Millisecond)
	assert.Equal(t, PromptTimedOut, result)

	// after the timeout the nonce is forgotten
	assert.Equal(t, promptNotFound, registry.resolve(nonce, "user1", true))
}

func TestPromptRegistry_UnknownNonce(t *testing.T) {
	registry := newPromptRegistry()
	assert.Equal(t, promptNotFound, registry.resolve("missing", "user1", true))
}
