package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Accepted media types for document extraction.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
)

const defaultExtractionInstruction = `Extract the student profile from the attached document.
Return a single JSON object with these optional fields, omitting any field the document does not support:
fullName (string), cgpa (number, on a 4.0 scale), ielts (number), fieldOfStudy (string),
skills (string array), backgroundSummary (string), careerGoals (string),
experience (string array), achievements (string array), certifications (string array),
languages (string array), suggestedImprovements (string array),
detectedCountryPreference (string, one of Canada, USA, Germany, France, Italy).
Do not guess values that are not in the document. Respond with JSON only.`

// SupportedMediaType reports whether the extraction endpoint accepts the
// declared media type.
func SupportedMediaType(mediaType string) bool {
	switch mediaType {
	case MediaTypePDF, MediaTypePNG, MediaTypeJPEG:
		return true
	}
	return false
}

// ExtractStructured sends a document inline (base64) with an extraction
// instruction and parses the JSON reply into an ExtractedProfile. A reply
// that cannot be parsed yields *ExtractionError and no partial record.
func (c *Client) ExtractStructured(ctx context.Context, doc []byte, mediaType, instruction string) (*ExtractedProfile, error) {
	if !SupportedMediaType(mediaType) {
		return nil, fmt.Errorf("unsupported media type %q", mediaType)
	}
	if len(doc) == 0 {
		return nil, errors.New("empty document")
	}
	if strings.TrimSpace(instruction) == "" {
		instruction = defaultExtractionInstruction
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{InlineData: &geminiInlineData{
						MimeType: mediaType,
						Data:     base64.StdEncoding.EncodeToString(doc),
					}},
					{Text: instruction},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens:  c.maxOutputTokens,
			ResponseMimeType: "application/json",
		},
	}

	resp, err := c.generate(ctx, "extract", req)
	if err != nil {
		return nil, err
	}

	raw := cleanJSONResponse(responseText(resp))
	var profile ExtractedProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, &ExtractionError{Raw: raw, Err: err}
	}
	return &profile, nil
}

// Assess requests a machine-parseable eligibility and visa analysis for the
// given profile. Parse or validation failure yields *AssessmentError; a
// default result is never fabricated.
func (c *Client) Assess(ctx context.Context, in ProfileInputs) (*AssessmentResult, error) {
	prompt := fmt.Sprintf(`Assess this student profile for studying in %s.
CGPA: %.2f out of 4.0
IELTS: %.1f
Maximum annual budget: $%d
Field of interest: %s

Evaluate admission eligibility against typical requirements in %s and the
probability of obtaining a student visa under its current rules. List the
concrete risk factors and recommend up to three realistic programs.`,
		in.Country, in.CGPA, in.IELTS, in.Budget, in.Field, in.Country)

	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: c.systemInstruction}},
		},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens:  c.maxOutputTokens,
			ResponseMimeType: "application/json",
			ResponseSchema:   assessmentSchema(),
		},
	}

	resp, err := c.generate(ctx, "assess", req)
	if err != nil {
		return nil, err
	}

	raw := cleanJSONResponse(responseText(resp))
	var result AssessmentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &AssessmentError{Raw: raw, Err: err}
	}
	if err := validateAssessment(&result); err != nil {
		return nil, &AssessmentError{Raw: raw, Err: err}
	}
	return &result, nil
}

// DraftSOP asks the backend to write a statement of purpose from the
// application details. The reply is plain prose, not structured output.
func (c *Client) DraftSOP(ctx context.Context, in SOPInputs) (string, error) {
	prompt := fmt.Sprintf(`Draft a professional Statement of Purpose.
Applicant name: %s
Target course: %s
Target university: %s
Academic background: %s
Career goals: %s

Write 4-5 paragraphs in the first person. Be specific, sincere and free of
clichés. Do not include a title or salutation.`,
		in.Name, in.Course, in.University, in.Background, in.Goals)

	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: c.systemInstruction}},
		},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens: c.maxOutputTokens,
		},
	}

	resp, err := c.generate(ctx, "sop", req)
	if err != nil {
		return "", err
	}

	text := responseText(resp)
	if text == "" {
		return "", &BackendError{Op: "sop", Err: errors.New("empty candidate response")}
	}
	return text, nil
}

// assessmentSchema constrains the assess response shape at the API level.
func assessmentSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"eligibility": map[string]interface{}{
				"type": "string",
				"enum": []string{"High", "Medium", "Low"},
			},
			"eligibilityReason": map[string]interface{}{"type": "string"},
			"visaProbability":   map[string]interface{}{"type": "integer"},
			"visaReason":        map[string]interface{}{"type": "string"},
			"visaRisks": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"recommendations": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"program":    map[string]interface{}{"type": "string"},
						"university": map[string]interface{}{"type": "string"},
						"reason":     map[string]interface{}{"type": "string"},
					},
					"required": []string{"program", "university", "reason"},
				},
			},
		},
		"required": []string{"eligibility", "eligibilityReason", "visaProbability", "visaReason"},
	}
}

func validateAssessment(r *AssessmentResult) error {
	switch r.Eligibility {
	case EligibilityHigh, EligibilityMedium, EligibilityLow:
	default:
		return fmt.Errorf("unknown eligibility %q", r.Eligibility)
	}
	if r.VisaProbability < 0 || r.VisaProbability > 100 {
		return fmt.Errorf("visa probability %d out of range", r.VisaProbability)
	}
	return nil
}

// cleanJSONResponse removes markdown code fences from a JSON response.
func cleanJSONResponse(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}
