// Package prompt assembles the text sent to the generative model. It does
// no I/O and never fails: missing context only shortens the prompt.
package prompt

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"commendai/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	descriptionLimit = 500
	commentLimit     = 300
	unknown          = "Unknown"
	noComments       = "No comments available to analyze."
)

// Tone is the register suggested to the model for a given video.
type Tone string

const (
	ToneCelebratory Tone = "celebratory"
	ToneEncouraging Tone = "encouraging"
	ToneEmpathetic  Tone = "empathetic"
	ToneWitty       Tone = "witty"
	ToneNeutral     Tone = "neutral"
)

const (
	highViews       = 1_000_000
	highSubscribers = 1_000_000
	lowViews        = 10_000
	lowSubscribers  = 10_000
)

var seriousWords = []string{
	"tragedy", "memorial", "funeral", "war", "disaster", "earthquake", "illness", "cancer",
	"grief", "loss", "depression", "rip", "news", "deprem", "vefat", "savaş",
}

var lightWords = []string{
	"funny", "comedy", "meme", "prank", "fails", "parody", "bloopers", "joke", "lol",
	"komik", "şaka", "skeç",
}

var disclaimers = map[models.Language]string{
	models.Turkish:  "Not: Bu yorum AI tarafından üretilmiştir.",
	models.English:  "Note: This comment was generated by AI.",
	models.Russian:  "Примечание: этот комментарий создан ИИ.",
	models.Chinese:  "注：此评论由AI生成。",
	models.Japanese: "注：このコメントはAIによって生成されました。",
	models.German:   "Hinweis: Dieser Kommentar wurde von einer KI erstellt.",
	models.French:   "Remarque : ce commentaire a été généré par une IA.",
	models.Spanish:  "Nota: Este comentario fue generado por IA.",
}

var styleHints = map[models.Style]string{
	models.StyleDefault:      "balanced and natural, like an engaged regular viewer",
	models.StyleFriendly:     "warm and casual, as if talking to a friend",
	models.StyleProfessional: "precise and insightful, focusing on the substance",
	models.StyleFunny:        "light-hearted with a clever joke tied to the content",
	models.StyleCritical:     "constructive critique that names one concrete improvement",
	models.StyleSupportive:   "encouraging and appreciative of the creator's effort",
	models.StyleQuestion:     "curious, ending with a genuine question for the creator or viewers",
}

// Disclaimer returns the fixed AI-generated notice for lang, falling back
// to English.
func Disclaimer(lang models.Language) string {
	if d, ok := disclaimers[lang]; ok {
		return d
	}
	return disclaimers[models.English]
}

// SuggestTone picks a tone from the topic first and popularity second.
func SuggestTone(gc models.GenerationContext) Tone {
	text := strings.ToLower(gc.Video.Title + " " + strings.Join(gc.Video.Tags, " "))
	switch {
	case containsWord(text, seriousWords):
		return ToneEmpathetic
	case containsWord(text, lightWords):
		return ToneWitty
	}

	subs, subsKnown := subscribers(gc)
	switch {
	case gc.Video.ViewCount >= highViews || (subsKnown && subs >= highSubscribers):
		return ToneCelebratory
	case gc.Video.ViewCount < lowViews && (!subsKnown || subs < lowSubscribers):
		return ToneEncouraging
	}
	return ToneNeutral
}

// Build returns the comment prompt for gc. Unknown styles and languages
// fall back to the defaults.
func Build(gc models.GenerationContext, style models.Style, lang models.Language) string {
	if !lang.IsValid() {
		lang = models.DefaultLanguage
	}
	hint, ok := styleHints[style]
	if !ok {
		style = models.StyleDefault
		hint = styleHints[style]
	}

	p := message.NewPrinter(language.English)
	v := gc.Video
	var b strings.Builder

	b.WriteString("### TASK ###\n")
	fmt.Fprintf(&b, "You are CommendAI, an assistant that writes original, creative and valuable comments for YouTube videos. Comment language: **%s**.\n\n", lang)

	b.WriteString("### VIDEO ###\n")
	fmt.Fprintf(&b, "- Title: %s\n", orUnknown(v.Title))
	fmt.Fprintf(&b, "- Channel: %s\n", orUnknown(v.ChannelTitle))
	if desc := strings.TrimSpace(v.Description); desc != "" {
		fmt.Fprintf(&b, "- Description: %s\n", truncate(desc, descriptionLimit))
	}
	b.WriteString("\n### STATISTICS ###\n")
	fmt.Fprintf(&b, "- Views: %s\n", p.Sprintf("%d", v.ViewCount))
	fmt.Fprintf(&b, "- Likes: %s\n", p.Sprintf("%d", v.LikeCount))
	fmt.Fprintf(&b, "- Comments: %s\n", p.Sprintf("%d", v.CommentCount))
	fmt.Fprintf(&b, "- Duration: %s\n", FormatDuration(v.Duration))
	if subs, ok := subscribers(gc); ok {
		fmt.Fprintf(&b, "- Subscribers: %s\n", p.Sprintf("%d", subs))
	} else {
		fmt.Fprintf(&b, "- Subscribers: %s\n", unknown)
	}

	b.WriteString("\n### EXISTING COMMENTS ###\n")
	if len(gc.Comments) == 0 {
		b.WriteString(noComments + "\n")
	}
	for _, c := range gc.Comments {
		fmt.Fprintf(&b, "- '%s' (by %s)\n", truncate(oneLine(c.Text), commentLimit), orUnknown(c.Author))
	}

	if summary := strings.TrimSpace(gc.TranscriptSummary); summary != "" {
		b.WriteString("\n### WHAT THE VIDEO SAYS ###\n")
		b.WriteString(summary + "\n")
	}

	b.WriteString("\n### TONE ###\n")
	b.WriteString("- Very popular video or large channel: celebratory, acknowledge the milestone.\n")
	b.WriteString("- Small channel or few views: encouraging, make the creator feel seen.\n")
	b.WriteString("- Serious or sad topic: empathetic, never joke.\n")
	b.WriteString("- Light or humorous topic: witty, play along with the humor.\n")
	fmt.Fprintf(&b, "Suggested tone for this video: %s.\n", SuggestTone(gc))

	b.WriteString("\n### STRATEGY ###\n")
	fmt.Fprintf(&b, "Write the comment in the **%s** style: %s.\n", style, hint)
	b.WriteString("1. Originality: no stock phrases, be creative and specific.\n")
	b.WriteString("2. Add value: an observation or opinion, not only praise.\n")
	b.WriteString("3. Personal: write like a real viewer sharing their own experience.\n")
	b.WriteString("4. Different: take an angle the existing comments did not.\n")

	b.WriteString("\n### RULES ###\n")
	fmt.Fprintf(&b, "- Write entirely in %s.\n", lang)
	b.WriteString("- Length: 1 to 3 sentences.\n")
	b.WriteString("- Avoid generic or cliché phrases such as \"Great video!\".\n")
	fmt.Fprintf(&b, "- End with this sentence on its own new line: \"%s\"\n", Disclaimer(lang))

	b.WriteString("\nYour comment:\n")
	return b.String()
}

// SummaryPrompt asks for a short summary of a transcript in lang. The
// transcript is cut to maxChars runes when maxChars > 0.
func SummaryPrompt(transcript string, lang models.Language, maxChars int) string {
	if !lang.IsValid() {
		lang = models.DefaultLanguage
	}
	transcript = strings.TrimSpace(transcript)
	if maxChars > 0 {
		transcript = truncate(transcript, maxChars)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following YouTube video transcript in %s in 3 to 5 sentences. ", lang)
	b.WriteString("Keep the key points, notable moments and the overall mood. Output only the summary.\n\n")
	b.WriteString("### TRANSCRIPT ###\n")
	b.WriteString(transcript)
	b.WriteString("\n")
	return b.String()
}

// FormatDuration renders d as "X min Y sec". Zero renders as Unknown.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return unknown
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d min %d sec", total/60, total%60)
}

func subscribers(gc models.GenerationContext) (uint64, bool) {
	if gc.Channel == nil || gc.Channel.HiddenSubscriberCount {
		return 0, false
	}
	return gc.Channel.SubscriberCount, true
}

func containsWord(text string, words []string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(r == '\'' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r > utf8.RuneSelf)
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:limit])) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}
