package provider

import (
	"fmt"
	"strings"

	"github.com/eringen/seoblog"
)

// Prompt is the message pair sent to a chat model.
type Prompt struct {
	System string
	User   string
}

// Brand names the product the articles promote.
type Brand struct {
	Name    string // e.g. "SteadiDay"
	Website string // bare host used in the closing call to action
	Pitch   string // one-line product description
}

// DefaultBrand is the product the catalog was written for.
var DefaultBrand = Brand{
	Name:    "SteadiDay",
	Website: "steadiday.com",
	Pitch:   "a mobile app designed to help older adults live healthier, more organized lives",
}

// BuildPrompt writes the article brief for one content request. The model is
// asked for a single JSON object with title, meta_description, tags and an
// HTML content fragment.
func BuildPrompt(brand Brand, req seoblog.ContentRequest) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a blog post about: %q\n", req.Topic)
	fmt.Fprintf(&sb, "Target SEO keyword: %q\n\n", req.Keyword)

	sb.WriteString("TARGET AUDIENCE:\n")
	sb.WriteString("- Older adults interested in maintaining their health and independence\n")
	sb.WriteString("- People who may be managing medications or health conditions\n")
	sb.WriteString("- Caregivers helping aging parents or loved ones\n")
	sb.WriteString("- Anyone who appreciates practical, actionable health advice\n\n")

	sb.WriteString("LANGUAGE GUIDELINES:\n")
	sb.WriteString("- Use \"older adults\" or \"seniors\" instead of \"adults 50+\" or \"people over 50\"\n")
	sb.WriteString("- Keep the tone warm, encouraging and respectful, never condescending\n")
	sb.WriteString("- Write in a conversational, first-person style\n")
	sb.WriteString("- Focus on capability and independence\n\n")

	sb.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&sb, "1. TITLE: engaging and SEO-friendly, including the keyword %q naturally\n", req.Keyword)
	sb.WriteString("2. LENGTH: 900-1300 words of valuable content\n")
	sb.WriteString("3. STRUCTURE: an opening paragraph with the keyword, 4-6 sections with <h2> subheadings (one containing the keyword), conversational transitions, no bullet points or numbered lists\n")
	fmt.Fprintf(&sb, "4. PRODUCT MENTIONS (natural, not salesy): mid-article, briefly mention how %s's %s can help; later mention the premium %s feature; close with a call to action pointing to %s\n",
		brand.Name, req.FreeFeature, req.PremiumFeature, brand.Website)
	sb.WriteString("5. CREDIBILITY: 2-3 links to credible sources (Mayo Clinic, CDC, NIH, Harvard Health) with real URLs; weave statistics in naturally\n")
	sb.WriteString("6. SEO: a 150-160 character meta description including the keyword; keyword in the title, first paragraph, one <h2> and the conclusion\n\n")

	sb.WriteString("FORMAT YOUR RESPONSE AS JSON:\n")
	sb.WriteString(`{"title": "...", "meta_description": "...", "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"], "content": "Full HTML with <h2> and <p> tags and <a href='url' target='_blank' rel='noopener'>anchor text</a> for sources"}`)
	sb.WriteString("\n\nReturn ONLY valid JSON, no markdown code blocks. ")
	fmt.Fprintf(&sb, "Do not end with community engagement prompts. End the article after the %s call to action.", brand.Name)

	return Prompt{
		System: fmt.Sprintf("You are a health and wellness content writer for %s, %s. Reply with a single JSON object and nothing else.", brand.Name, brand.Pitch),
		User:   sb.String(),
	}
}
