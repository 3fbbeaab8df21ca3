package content

import (
	"fmt"
	"strings"

	"contentforge/internal/config"
)

// optimalLengths is the recommended caption length in characters per
// social platform. Values come from each platform's engagement guidance,
// not their hard caps.
var optimalLengths = map[string]int{
	"instagram": 125,
	"tiktok":    100,
	"pinterest": 200,
	"facebook":  40,
}

// platformHints holds the per-platform instruction appended to the social
// prompt.
var platformHints = map[string]string{
	"instagram": "First line must grab attention (appears before 'more')",
	"tiktok":    "Focus on quick, actionable tips",
	"pinterest": "SEO-optimized for Pinterest search",
	"facebook":  "Encourage conversation and engagement",
}

// systemPrompt builds the persistent brand instruction sent with every
// generation call.
func systemPrompt(brand config.BrandConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert content writer for %s, a premium kitchen tools brand.\n\n", brand.Name)

	b.WriteString("Brand Guidelines:\n")
	fmt.Fprintf(&b, "- Brand Name: %s\n", brand.Name)
	fmt.Fprintf(&b, "- Tagline: %s\n", brand.Tagline)
	fmt.Fprintf(&b, "- Voice: %s\n", brand.Voice)
	fmt.Fprintf(&b, "- Target Audience: %s\n", brand.TargetAudience)
	fmt.Fprintf(&b, "- Product Categories: %s\n\n", strings.Join(brand.Categories, ", "))

	fmt.Fprintf(&b, `Brand Story:
%s believes the heart of every home is the kitchen, where meals are prepared, memories are shared, and life happens. We create kitchen tools that embody simplicity, elegance, and functionality at a value that empowers everyone.

Our products feature:
- Timeless Design: Complements any kitchen style
- Thoughtful Functionality: Precision and performance
- Unbeatable Value: Premium quality without premium prices

Content Requirements:
- Write in a warm, professional, and helpful tone
- Focus on practical value for home cooks
- Include emotional connection to cooking and family
- Emphasize quality, durability, and thoughtful design
- Be conversational but authoritative
- Use specific, actionable advice
- Include relevant statistics or tips when appropriate`, brand.Name)

	return b.String()
}

func blogPrompt(topic string, keywords []string, wordCount int, brand config.BrandConfig) string {
	return fmt.Sprintf(`Write a comprehensive blog post about: %s

Requirements:
- Target word count: %d words
- Primary keywords to naturally incorporate: %s
- Target audience: %s
- Tone: %s

Structure:
1. Compelling title (60 characters max, include primary keyword)
2. Engaging introduction (hook the reader, explain why this matters)
3. Well-organized body with clear sections and headers
4. Practical tips, techniques, or step-by-step instructions
5. Strong conclusion with call-to-action
6. Meta description (155 characters max)

Content Guidelines:
- Start with a relatable scenario or question
- Use short paragraphs (2-3 sentences max)
- Include specific, actionable advice
- Reference %s products naturally where relevant (don't force it)
- Add social proof or statistics where appropriate
- Use transitional phrases for better flow
- End with an engaging question or clear next step

SEO Best Practices:
- Include primary keyword in title, first paragraph, and throughout naturally
- Use semantic variations of keywords
- Create scannable content with headers (H2, H3)
- Include internal linking opportunities (mark with [INTERNAL LINK: topic])
- Optimize for featured snippets where possible

Return the content in JSON format:
{
    "title": "SEO-optimized title",
    "content": "Full blog post content with markdown formatting",
    "meta_description": "Compelling meta description",
    "suggested_internal_links": ["topic1", "topic2"],
    "primary_keyword": "main keyword",
    "secondary_keywords": ["keyword1", "keyword2"]
}`, topic, wordCount, strings.Join(keywords, ", "), brand.TargetAudience, brand.Voice, brand.Name)
}

func productPrompt(name, productContext string, keywords []string, wordCount int) string {
	return fmt.Sprintf(`Write a compelling product description for: %s

Product Context:
%s

Requirements:
- Word count: %d words
- Keywords: %s
- Focus on benefits, not just features
- Address customer pain points
- Create emotional connection

Structure:
1. Attention-grabbing headline (include primary keyword)
2. Opening paragraph: Transform the problem into desire
3. Key features with benefits (use bullet points)
4. Usage scenarios and lifestyle benefits
5. Quality and craftsmanship details
6. Call-to-action
7. Short meta description (155 characters)

Guidelines:
- Use sensory language (feel, see, experience)
- Paint a picture of life with the product
- Include social proof elements if available
- Address common objections subtly
- Create urgency without being pushy
- Maintain premium positioning

Return JSON format:
{
    "headline": "Product headline",
    "short_description": "2-3 sentence summary",
    "long_description": "Full product description",
    "features_and_benefits": ["feature 1: benefit", "feature 2: benefit"],
    "meta_description": "SEO meta description",
    "bullet_points": ["key point 1", "key point 2"],
    "suggested_tags": ["tag1", "tag2"]
}`, name, productContext, wordCount, strings.Join(keywords, ", "))
}

func socialPrompt(topic string, keywords []string, platform string, brand config.BrandConfig) string {
	limit, ok := optimalLengths[platform]
	if !ok {
		limit = 150
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Create engaging social media content for %s about: %s

Platform: %s
Optimal length: ~%d characters
Keywords: %s
Brand voice: %s

Content Requirements:
- Hook reader in first line
- Tell a story or share a tip
- Include emotional connection
- Natural call-to-action
- Brand-appropriate hashtags
`, titleCase(platform), topic, platform, limit, strings.Join(keywords, ", "), brand.Voice)

	if hint, ok := platformHints[platform]; ok {
		fmt.Fprintf(&b, "\nFor %s:\n- %s\n", platform, hint)
	}

	b.WriteString(`
Return JSON:
{
    "caption": "Main post copy",
    "hashtags": ["hashtag1", "hashtag2"],
    "call_to_action": "Specific CTA",
    "image_suggestion": "Description of ideal accompanying image",
    "posting_tips": "Best practices for this specific post"
}`)
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
