package gemini

// Role tags a prior conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior conversation turn, in chronological order.
type Turn struct {
	Role Role
	Text string
}

// ProfileInputs is the structured form a student fills in for an
// eligibility and visa assessment.
type ProfileInputs struct {
	CGPA    float64
	IELTS   float64
	Budget  int
	Country string
	Field   string
}

// SOPInputs collects the application details used to draft a statement of
// purpose.
type SOPInputs struct {
	Name       string
	Course     string
	University string
	Background string
	Goals      string
}

// ExtractedProfile is the best-effort record parsed from an uploaded CV.
// Every field is optional; numeric fields use pointers so an absent score
// is never mistaken for a real zero.
type ExtractedProfile struct {
	FullName                 string   `json:"fullName,omitempty"`
	CGPA                     *float64 `json:"cgpa,omitempty"`
	IELTS                    *float64 `json:"ielts,omitempty"`
	FieldOfStudy             string   `json:"fieldOfStudy,omitempty"`
	Skills                   []string `json:"skills,omitempty"`
	BackgroundSummary        string   `json:"backgroundSummary,omitempty"`
	CareerGoals              string   `json:"careerGoals,omitempty"`
	Experience               []string `json:"experience,omitempty"`
	Achievements             []string `json:"achievements,omitempty"`
	Certifications           []string `json:"certifications,omitempty"`
	Languages                []string `json:"languages,omitempty"`
	SuggestedImprovements    []string `json:"suggestedImprovements,omitempty"`
	DetectedCountryPreference string  `json:"detectedCountryPreference,omitempty"`
}

// Eligibility is the overall admission outlook of an assessment.
type Eligibility string

const (
	EligibilityHigh   Eligibility = "High"
	EligibilityMedium Eligibility = "Medium"
	EligibilityLow    Eligibility = "Low"
)

// Recommendation is one program suggestion inside an assessment.
type Recommendation struct {
	Program    string `json:"program"`
	University string `json:"university"`
	Reason     string `json:"reason"`
}

// AssessmentResult is the parsed eligibility and visa analysis. Produced
// fresh per request and never persisted.
type AssessmentResult struct {
	Eligibility       Eligibility      `json:"eligibility"`
	EligibilityReason string           `json:"eligibilityReason"`
	VisaProbability   int              `json:"visaProbability"`
	VisaReason        string           `json:"visaReason"`
	VisaRisks         []string         `json:"visaRisks"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// Wire types for the Gemini REST API.

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generation_config"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64-encoded document bytes
}

type geminiGenerationConfig struct {
	Temperature      float64                `json:"temperature,omitempty"`
	MaxOutputTokens  int                    `json:"max_output_tokens,omitempty"`
	ResponseMimeType string                 `json:"response_mime_type,omitempty"`
	ResponseSchema   map[string]interface{} `json:"response_schema,omitempty"`
	ThinkingConfig   *geminiThinkingConfig  `json:"thinking_config,omitempty"`
}

// geminiThinkingConfig disables model thinking for conversational turns;
// flash-class models answer faster without a thinking budget.
type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinking_budget"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiAPIError   `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
