package analyze

// ChatClient exports chatClient for testing.
type ChatClient = chatClient
