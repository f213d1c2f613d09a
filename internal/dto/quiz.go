package dto

// GenerateQuizRequest is the request body for quiz generation.
// @Description Request body for generating a quiz from lesson content
type GenerateQuizRequest struct {
	Content      string `json:"content"`
	NumQuestions int    `json:"num_questions"`
	// UseEnhancement toggles the optional tagger/embedding refinement
	// paths. Defaults to true when omitted.
	UseEnhancement *bool `json:"use_enhancement,omitempty"`
}

// Enhancement resolves the optional flag to its default.
func (r *GenerateQuizRequest) Enhancement() bool {
	if r.UseEnhancement == nil {
		return true
	}
	return *r.UseEnhancement
}

// QuestionResponse represents a single generated question in the API response
type QuestionResponse struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// GenerateQuizResponse represents a generated quiz in the API response
type GenerateQuizResponse struct {
	QuizID    string             `json:"quiz_id"`
	Questions []QuestionResponse `json:"questions"`
	Count     int                `json:"count"`
	// Reason explains an empty question list ("empty_content",
	// "no_facts"); empty on success.
	Reason string `json:"reason,omitempty"`
}

// BatchGenerateItem is one lesson in a batch generation request.
type BatchGenerateItem struct {
	ID           string `json:"id"`
	Content      string `json:"content"`
	NumQuestions int    `json:"num_questions"`
}

// BatchGenerateRequest is the request body for batch quiz generation.
// @Description Request body for generating quizzes from several lessons at once
type BatchGenerateRequest struct {
	Items          []BatchGenerateItem `json:"items"`
	UseEnhancement *bool               `json:"use_enhancement,omitempty"`
}

// Enhancement resolves the optional flag to its default.
func (r *BatchGenerateRequest) Enhancement() bool {
	if r.UseEnhancement == nil {
		return true
	}
	return *r.UseEnhancement
}

// BatchGenerateResult pairs an item ID with its quiz or its failure.
// Exactly one of Quiz and Error is set.
type BatchGenerateResult struct {
	ID    string                `json:"id"`
	Quiz  *GenerateQuizResponse `json:"quiz,omitempty"`
	Error string                `json:"error,omitempty"`
}

// BatchGenerateResponse lists per-item results in request order.
type BatchGenerateResponse struct {
	Results []BatchGenerateResult `json:"results"`
}

// AnswerSubmission is one answered question.
type AnswerSubmission struct {
	QuestionID  string `json:"question_id"`
	AnswerIndex int    `json:"answer_index"`
}

// ScoreQuizRequest carries a quiz and the user's answers for scoring.
type ScoreQuizRequest struct {
	Questions []QuestionResponse `json:"questions"`
	Answers   []AnswerSubmission `json:"answers"`
}

// ScoreQuizResponse is the scoring result.
type ScoreQuizResponse struct {
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
	Score          float64 `json:"score"`
}

// ErrorResponse is the minimal error body used by handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
