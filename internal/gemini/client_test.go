package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	return NewClientWithConfig(cfg)
}

func textResponse(t *testing.T, text string) []byte {
	t.Helper()
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return data
}

func TestConverse_FlattensTranscript(t *testing.T) {
	var captured geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write(textResponse(t, "Tuition at U of T ranges from CAD 45k to 60k."))
	})

	prior := []Turn{
		{Role: RoleAssistant, Text: "Hello! How can I help?"},
		{Role: RoleUser, Text: "Tell me about Canada."},
		{Role: RoleAssistant, Text: "Canada has excellent universities."},
	}
	reply, err := client.Converse(context.Background(), "What is the tuition at U of T?", prior)
	require.NoError(t, err)
	assert.Contains(t, reply, "Tuition")

	require.Len(t, captured.Contents, 1)
	prompt := captured.Contents[0].Parts[0].Text
	assert.True(t, strings.HasSuffix(prompt, "User: What is the tuition at U of T?\nConsultant:"))

	// Prior turns stay in chronological order.
	iHello := strings.Index(prompt, "Consultant: Hello!")
	iCanada := strings.Index(prompt, "User: Tell me about Canada.")
	iUnis := strings.Index(prompt, "Consultant: Canada has excellent universities.")
	require.True(t, iHello >= 0 && iCanada >= 0 && iUnis >= 0)
	assert.Less(t, iHello, iCanada)
	assert.Less(t, iCanada, iUnis)

	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "Study Abroad Consultant")
}

func TestNewClientWithConfig_DefaultInstructionCoversAllDestinations(t *testing.T) {
	var captured geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write(textResponse(t, "ok"))
	})

	_, err := client.Converse(context.Background(), "hi", nil)
	require.NoError(t, err)

	// The fallback instruction is the catalog-enriched consultant prompt,
	// not a bare persona line.
	require.NotNil(t, captured.SystemInstruction)
	instruction := captured.SystemInstruction.Parts[0].Text
	assert.Contains(t, instruction, "Study Abroad Consultant")
	assert.Contains(t, instruction, "Partner universities")
	assert.Contains(t, instruction, "PGWP")
	assert.True(t, strings.HasSuffix(instruction, "give ranges."))
}

func TestConverse_BackendFailure(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded"}}`)
	})

	_, err := client.Converse(context.Background(), "hi", nil)
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusTooManyRequests, backendErr.StatusCode)
}

func TestConverse_NoAPIKey(t *testing.T) {
	client := NewClient("")
	_, err := client.Converse(context.Background(), "hi", nil)

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
}

func TestConverseStream_FragmentsInOrder(t *testing.T) {
	fragments := []string{"Canada ", "offers ", "a three-year ", "PGWP."}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "streamGenerateContent")
		w.Header().Set("Content-Type", "text/event-stream")
		for _, frag := range fragments {
			fmt.Fprintf(w, "data: %s\n\n", textResponse(t, frag))
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	contentChan, errorChan := client.ConverseStream(context.Background(), "PGWP?", nil)

	var got []string
	for frag := range contentChan {
		got = append(got, frag)
	}
	assert.Equal(t, fragments, got)
	assert.NoError(t, <-errorChan)
	assert.Equal(t, "Canada offers a three-year PGWP.", strings.Join(got, ""))
}

func TestConverseStream_MidStreamError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "data: %s\n\n", textResponse(t, "Canada offers..."))
		fmt.Fprint(w, `data: {"error":{"code":500,"message":"backend exploded"}}`+"\n\n")
	})

	contentChan, errorChan := client.ConverseStream(context.Background(), "hi", nil)

	var got []string
	for frag := range contentChan {
		got = append(got, frag)
	}
	assert.Equal(t, []string{"Canada offers..."}, got)

	err := <-errorChan
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Contains(t, backendErr.Error(), "backend exploded")
}

func TestConverseStream_HTTPFailure(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	contentChan, errorChan := client.ConverseStream(context.Background(), "hi", nil)

	for range contentChan {
		t.Fatal("no fragments expected")
	}
	err := <-errorChan
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusServiceUnavailable, backendErr.StatusCode)
}

func TestConverseStream_NoAPIKey(t *testing.T) {
	client := NewClient("")
	contentChan, errorChan := client.ConverseStream(context.Background(), "hi", nil)

	for range contentChan {
		t.Fatal("no fragments expected")
	}
	require.Error(t, <-errorChan)
}

func TestExtractStructured_ParsesFencedJSON(t *testing.T) {
	var captured geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write(textResponse(t, "```json\n{\"fullName\":\"Sarah Khan\",\"cgpa\":3.8,\"detectedCountryPreference\":\"Canada\"}\n```"))
	})

	profile, err := client.ExtractStructured(context.Background(), []byte("%PDF-1.4 fake"), MediaTypePDF, "")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Khan", profile.FullName)
	require.NotNil(t, profile.CGPA)
	assert.InDelta(t, 3.8, *profile.CGPA, 0.001)
	assert.Nil(t, profile.IELTS)
	assert.Equal(t, "Canada", profile.DetectedCountryPreference)

	// Document travels inline with its declared media type.
	require.Len(t, captured.Contents, 1)
	require.NotNil(t, captured.Contents[0].Parts[0].InlineData)
	assert.Equal(t, MediaTypePDF, captured.Contents[0].Parts[0].InlineData.MimeType)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
}

func TestExtractStructured_GarbageOutput(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(t, "I could not read the document, sorry!"))
	})

	profile, err := client.ExtractStructured(context.Background(), []byte("bytes"), MediaTypePNG, "")
	assert.Nil(t, profile)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestExtractStructured_RejectsUnsupportedMediaType(t *testing.T) {
	client := NewClient("key")
	_, err := client.ExtractStructured(context.Background(), []byte("bytes"), "application/zip", "")
	require.Error(t, err)

	var extractionErr *ExtractionError
	assert.False(t, errors.As(err, &extractionErr))
}

func TestAssess_ParsesResult(t *testing.T) {
	var captured geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write(textResponse(t, `{
			"eligibility": "High",
			"eligibilityReason": "Strong CGPA and IELTS for Canadian MSc programs.",
			"visaProbability": 82,
			"visaReason": "Funds cover tuition plus the required living costs.",
			"visaRisks": ["Budget leaves little slack for Toronto rents"],
			"recommendations": [
				{"program": "Data Science Master", "university": "University of Toronto", "reason": "Field match"}
			]
		}`))
	})

	result, err := client.Assess(context.Background(), ProfileInputs{
		CGPA: 3.8, IELTS: 7.5, Budget: 40000, Country: "Canada", Field: "Data Science",
	})
	require.NoError(t, err)
	assert.Equal(t, EligibilityHigh, result.Eligibility)
	assert.Equal(t, 82, result.VisaProbability)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "University of Toronto", result.Recommendations[0].University)

	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
	assert.NotNil(t, captured.GenerationConfig.ResponseSchema)
	assert.Contains(t, captured.Contents[0].Parts[0].Text, "Canada")
}

func TestAssess_InvalidOutput(t *testing.T) {
	t.Run("non-JSON reply", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(textResponse(t, "your chances look good!"))
		})

		result, err := client.Assess(context.Background(), ProfileInputs{Country: "Canada"})
		assert.Nil(t, result)

		var assessErr *AssessmentError
		require.ErrorAs(t, err, &assessErr)
	})

	t.Run("unknown eligibility value", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(textResponse(t, `{"eligibility":"Excellent","eligibilityReason":"x","visaProbability":50,"visaReason":"y"}`))
		})

		_, err := client.Assess(context.Background(), ProfileInputs{Country: "Canada"})
		var assessErr *AssessmentError
		require.ErrorAs(t, err, &assessErr)
	})

	t.Run("probability out of range", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(textResponse(t, `{"eligibility":"Low","eligibilityReason":"x","visaProbability":140,"visaReason":"y"}`))
		})

		_, err := client.Assess(context.Background(), ProfileInputs{Country: "Canada"})
		var assessErr *AssessmentError
		require.ErrorAs(t, err, &assessErr)
	})
}

func TestDraftSOP(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(t, "From my first undergraduate project..."))
	})

	sop, err := client.DraftSOP(context.Background(), SOPInputs{
		Name: "Sarah Khan", Course: "MSc CS", University: "University of Toronto",
		Background: "BSc in CSE with 3.8 CGPA", Goals: "ML engineering",
	})
	require.NoError(t, err)
	assert.Contains(t, sop, "undergraduate")
}

func TestCleanJSONResponse(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		`{"a":1}`:                 `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanJSONResponse(in))
	}
}
