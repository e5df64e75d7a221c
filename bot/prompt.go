/* prompt.go
 * Contains the are-you-sure prompt registry. A destructive command responds with a
 * confirm/cancel button pair keyed by a nonce and blocks until the invoker presses
 * one or the prompt times out. Presses by anyone other than the invoker are rejected
 * without resolving the prompt
 * Authors: Zachary Bower
 */

package bot

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromptResult is the outcome of an are-you-sure prompt
type PromptResult int

const (
	PromptConfirmed PromptResult = iota
	PromptDeclined
	PromptTimedOut
)

// resolveStatus describes what a button press did to a pending prompt
type resolveStatus int

const (
	promptResolved resolveStatus = iota
	promptNotFound
	promptWrongUser
)

type pendingPrompt struct {
	userID string
	ch     chan PromptResult
}

// promptRegistry tracks the prompts currently awaiting a button press, keyed by nonce
type promptRegistry struct {
	mu      sync.Mutex
	pending map[string]*pendingPrompt
}

func newPromptRegistry() *promptRegistry {
	return &promptRegistry{pending: make(map[string]*pendingPrompt)}
}

// register creates a pending prompt for the given invoker and returns its nonce
func (r *promptRegistry) register(userID string) string {
	nonce := primitive.NewObjectID().Hex()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[nonce] = &pendingPrompt{
		userID: userID,
		// buffered so a press racing the timeout never blocks the presser
		ch: make(chan PromptResult, 1),
	}
	return nonce
}

// resolve delivers a press to the pending prompt. Only the registering invoker may
// resolve it; everyone else gets promptWrongUser and the prompt stays pending
func (r *promptRegistry) resolve(nonce string, userID string, confirmed bool) resolveStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	prompt, ok := r.pending[nonce]
	if !ok {
		return promptNotFound
	}
	if prompt.userID != userID {
		return promptWrongUser
	}

	delete(r.pending, nonce)
	if confirmed {
		prompt.ch <- PromptConfirmed
	} else {
		prompt.ch <- PromptDeclined
	}
	return promptResolved
}

// wait blocks until the prompt is resolved or the timeout elapses, then forgets it
func (r *promptRegistry) wait(nonce string, timeout time.Duration) PromptResult {
	r.mu.Lock()
	prompt, ok := r.pending[nonce]
	r.mu.Unlock()
	if !ok {
		return PromptTimedOut
	}

	select {
	case result := <-prompt.ch:
		return result
	case <-time.After(timeout):
		r.mu.Lock()
		delete(r.pending, nonce)
		r.mu.Unlock()
		// a press may have landed between the timeout firing and the delete
		select {
		case result := <-prompt.ch:
			return result
		default:
			return PromptTimedOut
		}
	}
}
