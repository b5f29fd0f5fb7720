package youtubedomain

// VideoSnippet é o snippet de um vídeo na Data API. O update de título
// reescreve o snippet inteiro, então todos os campos relevantes precisam
// ser preservados na escrita.
type VideoSnippet struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CategoryID      string   `json:"categoryId"`
	Tags            []string `json:"tags,omitempty"`
	DefaultLanguage string   `json:"defaultLanguage,omitempty"`
}

type VideoResource struct {
	ID      string       `json:"id"`
	Snippet VideoSnippet `json:"snippet"`
}

type VideoListResponse struct {
	Items []VideoResource `json:"items"`
}
