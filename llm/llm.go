package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Mode selects which prompt template a query uses.
type Mode int

const (
	// ModeMeaning asks for a concise Japanese explanation of the text.
	ModeMeaning Mode = iota
	// ModeTranslate asks for a Japanese translation plus related expressions.
	ModeTranslate
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	default:
		return "meaning"
	}
}

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini endpoint, mainly for tests.
	BaseURL string
}

var config *Config

func Init(cfg *Config) {
	config = cfg
}

// Gemini generateContent API structures
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Fixed generation parameters for every query.
var fixedGenerationConfig = generationConfig{
	Temperature:     0.3,
	TopP:            0.8,
	TopK:            20,
	MaxOutputTokens: 200,
}

// All harm categories are left unblocked; the captured text is the user's own
// reading material and filtering it produces confusing empty answers.
var permissiveSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// BuildPrompt renders the fixed template for the given mode around the
// captured text. Template choice is the only effect of mode.
func BuildPrompt(mode Mode, text string) string {
	if mode == ModeTranslate {
		return fmt.Sprintf(`次のテキストについて、以下の2点を出力してください：
1. 日本語訳
2. 重要な単語や表現の類似語/同義語（英語で3-5個）

テキスト：
%s

出力形式：
【日本語訳】
（翻訳文）

【Similar Expressions】
・(synonym/related word 1)
・(synonym/related word 2)
・(synonym/related word 3)`, text)
	}
	return fmt.Sprintf(`次のテキストの内容を、50-100文字程度の日本語で簡潔に説明してください。
専門用語がある場合は、その短い説明も含めてください。

テキスト：
%s`, text)
}

// ResultTitle returns the dialog title for a mode's result.
func ResultTitle(mode Mode) string {
	if mode == ModeTranslate {
		return "翻訳結果と類似表現"
	}
	return "テキストの要約"
}

// Query sends the prompt to the Gemini API and returns the trimmed response
// text. Each call uses a fresh connection; nothing is retried and no timeout
// is enforced, so a hang blocks only the calling task.
func Query(prompt string) (string, error) {
	if config == nil {
		return "", fmt.Errorf("LLM client not initialized")
	}
	if config.APIKey == "" {
		return "", fmt.Errorf("API key is required")
	}
	if config.Model == "" {
		return "", fmt.Errorf("model is required")
	}

	request := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: fixedGenerationConfig,
		SafetySettings:   permissiveSafetySettings,
	}

	response, err := makeAPIRequest(request)
	if err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in API response")
	}

	var sb strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return result, nil
}

func makeAPIRequest(request generateRequest) (*generateResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		baseURL, url.PathEscape(config.Model), url.QueryEscape(config.APIKey))

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %v", err)
	}
	defer resp.Body.Close()

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s (status: %s, code: %d)",
			response.Error.Message, response.Error.Status, response.Error.Code)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return &response, nil
}
