// Package i18n localizes user facing messages. Message files are embedded
// TOML, one per interface language.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"commendai/internal/models"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Message ids.
const (
	MsgMissingVideoURL         = "missing_video_url"
	MsgMissingLanguage         = "missing_language"
	MsgMissingCommentStyle     = "missing_comment_style"
	MsgInvalidYouTubeURL       = "invalid_youtube_url"
	MsgMissingCommentData      = "missing_comment_data"
	MsgFormValidation          = "form_validation_error"
	MsgNoDataSent              = "no_data_sent"
	MsgVideoNotFound           = "video_not_found"
	MsgVideoPrivate            = "video_private"
	MsgVideoGeneric            = "video_generic_error"
	MsgDuplicateWarning        = "duplicate_warning"
	MsgDuplicateError          = "duplicate_error"
	MsgAIAPIKey                = "ai_api_key_error"
	MsgAIQuota                 = "ai_quota_error"
	MsgAINetwork               = "ai_network_error"
	MsgAIGeneric               = "ai_generic_error"
	MsgYouTubePermission       = "youtube_permission_error"
	MsgYouTubeQuota            = "youtube_quota_error"
	MsgYouTubeNotFound         = "youtube_not_found_error"
	MsgYouTubeGeneric          = "youtube_generic_error"
	MsgCommentPostedSuccess    = "comment_posted_success"
	MsgCommentGeneratedSuccess = "comment_generated_success"
	MsgSystemError             = "system_error"
)

// Supported lists the interface languages that have a message file.
var Supported = []language.Tag{
	language.English,
	language.Turkish,
	language.Russian,
	language.Chinese,
	language.Japanese,
}

// Data is the template data messages may reference.
type Data struct {
	Count int64
	Error string
}

type Translator struct {
	bundle   *goi18n.Bundle
	fallback *goi18n.Localizer
}

// New loads the embedded message files.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, tag := range Supported {
		path := fmt.Sprintf("locales/%s.toml", tag)
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return &Translator{
		bundle:   bundle,
		fallback: goi18n.NewLocalizer(bundle, language.English.String()),
	}, nil
}

// Normalize maps an interface language given as a code ("tr", "zh-CN") or
// a name ("Turkish", "english") to a supported code. Anything else is "en".
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if l, ok := models.ParseLanguage(lang); ok {
		lang = l.Code()
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return language.English.String()
	}
	base, _ := tag.Base()
	for _, s := range Supported {
		if sb, _ := s.Base(); sb == base {
			return s.String()
		}
	}
	return language.English.String()
}

// Localize renders message id in lang. Missing translations fall back to
// English, and an unknown id renders as the id itself.
func (t *Translator) Localize(lang, id string, data Data) string {
	cfg := &goi18n.LocalizeConfig{MessageID: id, TemplateData: data}

	msg, err := goi18n.NewLocalizer(t.bundle, Normalize(lang)).Localize(cfg)
	if err == nil && msg != "" {
		return msg
	}
	if msg, err := t.fallback.Localize(cfg); err == nil {
		return msg
	}
	return id
}

var matcher = language.NewMatcher(Supported)

// MatchAcceptLanguage picks a supported code from an Accept-Language
// header, or "" when nothing matches.
func MatchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return Supported[idx].String()
}
