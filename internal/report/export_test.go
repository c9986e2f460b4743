package report

// ChatClient exports chatClient for testing.
type ChatClient = chatClient
