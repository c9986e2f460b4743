package products

// ChatClient exports chatClient for testing.
type ChatClient = chatClient

// FilterFunctionName exports filterFunctionName for testing.
const FilterFunctionName = filterFunctionName
