package domain

// Review is one customer review as the backend ships it. Rating arrives as
// a string ("4.0 out of 5 stars" style text from some scrapers).
type Review struct {
	ID       string `json:"_id,omitempty"`
	Rating   string `json:"rating"`
	Text     string `json:"review_text"`
	Reviewer string `json:"reviewer_name,omitempty"`
	Date     string `json:"review_date,omitempty"`
	Verified bool   `json:"verified_purchase,omitempty"`
}

// SentimentBreakdown is the positive/neutral/negative split of a product's
// reviews, in percent.
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentimentTopic is one recurring theme in a product's reviews.
type SentimentTopic struct {
	Topic     string  `json:"topic"`
	Sentiment float64 `json:"sentiment"`
	Mentions  int     `json:"mentions"`
}

// Sentiment is the aggregate review-sentiment analysis for a product.
// Error is set when analysis could not run; callers treat such a payload
// as absent.
type Sentiment struct {
	Overall          SentimentBreakdown `json:"overall_sentiment"`
	KeyTopics        []SentimentTopic   `json:"key_topics"`
	ControversyScore float64            `json:"controversy_score"`
	ReliabilityScore float64            `json:"reliability_score"`
	AIConfidence     float64            `json:"ai_confidence"`
	Error            string             `json:"error,omitempty"`
}

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest asks the shopping assistant a question, with prior turns for
// context. Product fields are optional; when set the assistant answers in
// that product's context.
type ChatRequest struct {
	Query       string        `json:"query" validate:"required"`
	ProductID   string        `json:"product_id,omitempty"`
	ProductName string        `json:"product_name,omitempty"`
	History     []ChatMessage `json:"conversation_history"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Response    string `json:"response"`
	AIGenerated bool   `json:"ai_generated"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// Answer is the assistant's response to a one-shot product question.
type Answer struct {
	Question   string  `json:"question,omitempty"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence,omitempty"`
}

// SuggestedQuestions is the backend's list of Q&A prompts for a product.
type SuggestedQuestions struct {
	Questions []string `json:"questions"`
}

// AuthUser is the authenticated account profile.
type AuthUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	Picture      string `json:"picture,omitempty"`
	AuthProvider string `json:"auth_provider,omitempty"`
}

// AuthResult pairs a session token with the profile it belongs to.
type AuthResult struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// Credentials is a login or registration request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name,omitempty"`
}

// HealthStatus is the backend's own health report.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
