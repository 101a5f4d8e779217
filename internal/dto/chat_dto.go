package dto

type ChatRequest struct {
	Query string `json:"query" validate:"required,min=2,max=500"`
}

type ChatResponse struct {
	Response       string   `json:"response"`
	MatchedRecords []string `json:"matched_records"`
	UsedGeneration bool     `json:"used_generation"`
}
