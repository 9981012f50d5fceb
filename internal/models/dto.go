package models

import "encoding/json"

// API Request/Response DTOs for Swagger documentation

// GenerateCommentRequest represents request to draft a comment for a video
type GenerateCommentRequest struct {
	VideoURL          string `json:"video_url" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"` // Video reference
	Language          string `json:"language" example:"English"`                                      // Target language
	CommentStyle      string `json:"comment_style" example:"friendly"`                                // Comment style
	InterfaceLanguage string `json:"interface_language,omitempty" example:"en"`                       // Language of response messages
}

func (r *GenerateCommentRequest) Validate() error {
	if r.VideoURL == "" {
		return &ValidationError{Field: "video_url", Message: "video_url is required"}
	}
	if r.Language == "" {
		return &ValidationError{Field: "language", Message: "language is required"}
	}
	if _, ok := ParseLanguage(r.Language); !ok {
		return &ValidationError{Field: "language", Message: "unsupported language"}
	}
	if r.CommentStyle == "" {
		return &ValidationError{Field: "comment_style", Message: "comment_style is required"}
	}
	if _, ok := ParseStyle(r.CommentStyle); !ok {
		return &ValidationError{Field: "comment_style", Message: "unsupported comment_style"}
	}
	return nil
}

// GenerateCommentResponse represents the generate response, success or warning
type GenerateCommentResponse struct {
	Status        string `json:"status" example:"success"`                                  // success or warning
	GeneratedText string `json:"generated_text" example:"Great breakdown of the chorus!"`   // Drafted comment
	CommentID     string `json:"comment_id" example:"550e8400-e29b-41d4-a716-446655440002"` // Draft record id
	CommentCount  int    `json:"comment_count,omitempty" example:"1"`                       // Posted records for this video
	CanGenerate   bool   `json:"can_generate" example:"true"`                               // Generation is always allowed
	CanPost       bool   `json:"can_post" example:"true"`                                   // False once the video has a posted comment
	Message       string `json:"message" example:"Comment generated successfully!"`         // Localized message
}

// PostCommentRequest represents request to post a comment to YouTube
type PostCommentRequest struct {
	VideoURL          string `json:"video_url" example:"https://youtu.be/dQw4w9WgXcQ"`                    // Video reference
	CommentText       string `json:"comment_text" example:"Great breakdown of the chorus!"`               // Final comment text
	CommentID         string `json:"comment_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440002"` // Draft to promote
	InterfaceLanguage string `json:"interface_language,omitempty" example:"en"`                           // Language of response messages
}

func (r *PostCommentRequest) Validate() error {
	if r.VideoURL == "" {
		return &ValidationError{Field: "video_url", Message: "video_url is required"}
	}
	if r.CommentText == "" {
		return &ValidationError{Field: "comment_text", Message: "comment_text is required"}
	}
	return nil
}

// PostCommentResponse represents a successful post
type PostCommentResponse struct {
	Status  string          `json:"status" example:"success"`                       // Always success
	Message string          `json:"message" example:"Comment posted successfully!"` // Localized message
	Data    json.RawMessage `json:"data" swaggertype:"object"`                      // YouTube commentThread resource
}

// HistoryResponse represents the comment history listing
type HistoryResponse struct {
	Status  string        `json:"status" example:"success"`
	History []HistoryItem `json:"history"`
}

// LanguagesResponse lists the supported target languages and styles
type LanguagesResponse struct {
	Languages []Language `json:"languages"`
	Styles    []Style    `json:"styles"`
}

// ConfigStatusResponse reports which credentials are configured, never their values
type ConfigStatusResponse struct {
	HasGeminiKey  bool   `json:"has_gemini_key" example:"true"`
	HasYouTubeKey bool   `json:"has_youtube_key" example:"true"`
	HasOAuthToken bool   `json:"has_oauth_token" example:"false"`
	GeminiModel   string `json:"gemini_model" example:"gemini-2.0-flash"`
	Version       string `json:"version" example:"v1.0.0"`
}

// HealthResponse represents the health probe result
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`                              // Always error
	Kind    string `json:"kind" example:"duplicate_post_conflict"`              // Machine readable error kind
	Message string `json:"message" example:"You have already posted a comment"` // Localized message
	Detail  string `json:"detail,omitempty"`                                    // Technical detail, debug builds only
}
