package llm

// OpenRouterProvider rides the OpenAI-compatible OpenRouter endpoint.
// OpenRouter expects attribution headers on every request.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = "meta-llama/llama-3.1-70b-instruct"
	}
	p := NewOpenAIProvider(apiKey, model)
	p.name = "openrouter"
	p.baseURL = "https://openrouter.ai/api/v1"
	p.extraHeaders = map[string]string{
		"HTTP-Referer": "https://github.com/okvist/recast",
		"X-Title":      "recast",
	}
	return &OpenRouterProvider{OpenAIProvider: p}
}
