/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession implements DiscordSession for testing purposes. All methods are
// safe for concurrent use so prompt flows can be exercised across goroutines
type MockDiscordSession struct {
	mu sync.Mutex

	// Responses stores all interaction responses sent during tests
	Responses []MockResponse
	// ResponseEdits stores all interaction response edits
	ResponseEdits []MockResponse
	// SentMessages stores all channel messages sent during tests
	SentMessages []MockMessage
	// EditedMessages stores all channel message edits
	EditedMessages []MockMessage
	// DeletedMessages stores channelID/messageID pairs of deleted messages
	DeletedMessages []MockMessage
	// StartedThreads stores the threads created on messages
	StartedThreads []MockThread
	// DeletedChannels stores the ids of deleted channels (threads)
	DeletedChannels []string
	// ErrorToReturn allows tests to simulate errors on every call
	ErrorToReturn error

	nextMessageID int
}

// MockResponse represents one interaction response or edit
type MockResponse struct {
	Content    string
	Ephemeral  bool
	Components []discordgo.MessageComponent
	Embeds     []*discordgo.MessageEmbed
}

// MockMessage represents a message sent, edited or deleted in a channel
type MockMessage struct {
	ChannelID  string
	MessageID  string
	Content    string
	Components []discordgo.MessageComponent
	Embeds     []*discordgo.MessageEmbed
}

// MockThread represents a thread started on a message
type MockThread struct {
	ChannelID string
	MessageID string
	ThreadID  string
	Name      string
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{}
}

// InteractionRespond implements DiscordSession.InteractionRespond
func (m *MockDiscordSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	response := MockResponse{}
	if resp.Data != nil {
		response.Content = resp.Data.Content
		response.Ephemeral = resp.Data.Flags&discordgo.MessageFlagsEphemeral != 0
		response.Components = resp.Data.Components
		response.Embeds = resp.Data.Embeds
	}
	m.Responses = append(m.Responses, response)
	return nil
}

// InteractionResponseEdit implements DiscordSession.InteractionResponseEdit
func (m *MockDiscordSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	edit := MockResponse{}
	if newresp.Content != nil {
		edit.Content = *newresp.Content
	}
	if newresp.Components != nil {
		edit.Components = *newresp.Components
	}
	if newresp.Embeds != nil {
		edit.Embeds = *newresp.Embeds
	}
	m.ResponseEdits = append(m.ResponseEdits, edit)
	return &discordgo.Message{ID: "mock_response_id"}, nil
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	message := MockMessage{ChannelID: channelID, MessageID: m.mintMessageID(), Content: content}
	m.SentMessages = append(m.SentMessages, message)
	return &discordgo.Message{ID: message.MessageID, ChannelID: channelID, Content: content}, nil
}

// ChannelMessageSendComplex implements DiscordSession.ChannelMessageSendComplex
func (m *MockDiscordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	message := MockMessage{
		ChannelID:  channelID,
		MessageID:  m.mintMessageID(),
		Content:    data.Content,
		Components: data.Components,
		Embeds:     data.Embeds,
	}
	m.SentMessages = append(m.SentMessages, message)
	return &discordgo.Message{ID: message.MessageID, ChannelID: channelID, Content: data.Content}, nil
}

// ChannelMessageEditComplex implements DiscordSession.ChannelMessageEditComplex
func (m *MockDiscordSession) ChannelMessageEditComplex(edit *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	message := MockMessage{ChannelID: edit.Channel, MessageID: edit.ID}
	if edit.Content != nil {
		message.Content = *edit.Content
	}
	if edit.Components != nil {
		message.Components = *edit.Components
	}
	if edit.Embeds != nil {
		message.Embeds = *edit.Embeds
	}
	m.EditedMessages = append(m.EditedMessages, message)
	return &discordgo.Message{ID: edit.ID, ChannelID: edit.Channel}, nil
}

// ChannelMessageDelete implements DiscordSession.ChannelMessageDelete
func (m *MockDiscordSession) ChannelMessageDelete(channelID string, messageID string, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	m.DeletedMessages = append(m.DeletedMessages, MockMessage{ChannelID: channelID, MessageID: messageID})
	return nil
}

// MessageThreadStartComplex implements DiscordSession.MessageThreadStartComplex
func (m *MockDiscordSession) MessageThreadStartComplex(channelID string, messageID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	thread := MockThread{
		ChannelID: channelID,
		MessageID: messageID,
		ThreadID:  fmt.Sprintf("mock_thread_%d", len(m.StartedThreads)+1),
		Name:      data.Name,
	}
	m.StartedThreads = append(m.StartedThreads, thread)
	return &discordgo.Channel{ID: thread.ThreadID, Name: data.Name}, nil
}

// ChannelDelete implements DiscordSession.ChannelDelete
func (m *MockDiscordSession) ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	m.DeletedChannels = append(m.DeletedChannels, channelID)
	return &discordgo.Channel{ID: channelID}, nil
}

// GetLastResponse returns the last interaction response, or empty MockResponse if none
func (m *MockDiscordSession) GetLastResponse() MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Responses) == 0 {
		return MockResponse{}
	}
	return m.Responses[len(m.Responses)-1]
}

// GetLastMessage returns the last channel message sent, or empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

func (m *MockDiscordSession) mintMessageID() string {
	m.nextMessageID++
	return fmt.Sprintf("mock_message_%d", m.nextMessageID)
}

// ResponseCount returns how many interaction responses have been sent
func (m *MockDiscordSession) ResponseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Responses)
}

// GetLastResponseEdit returns the last interaction response edit, or empty MockResponse if none
func (m *MockDiscordSession) GetLastResponseEdit() MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ResponseEdits) == 0 {
		return MockResponse{}
	}
	return m.ResponseEdits[len(m.ResponseEdits)-1]
}
