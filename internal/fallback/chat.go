package fallback

import "strings"

// replyRule 是一组关键词及其命中后的回复。
type replyRule struct {
	name     string
	keywords []string
	reply    string
}

// chatRules 按顺序匹配，先命中者胜出，顺序不可调整。
var chatRules = []replyRule{
	{
		name:     "greeting",
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hello! I'm your AI content assistant powered by free AI technology. I can help you create content, develop social media strategies, and brainstorm ideas. What would you like to work on today?",
	},
	{
		name:     "social",
		keywords: []string{"social media", "instagram", "twitter"},
		reply: `Great question about social media! Here are some proven strategies:

• Post consistently (3-5 times per week minimum)
• Use platform-specific hashtags (#trending #content)
• Engage with your audience within 2 hours of posting
• Share behind-the-scenes content to build connection
• Use visual storytelling with high-quality images

Would you like me to help you generate specific social media content ideas? Try the 'Generate Ideas' button!`,
	},
	{
		name:     "blog",
		keywords: []string{"blog", "article", "writing"},
		reply: `Blog content is powerful for building authority! Here's what works:

• Focus on solving specific problems your audience faces
• Use clear headlines with numbers or questions
• Include actionable tips readers can implement immediately
• Optimize for SEO with relevant keywords
• Add internal links to keep readers engaged

Tip: Start with topics your audience frequently asks about. What niche are you writing in?`,
	},
	{
		name:     "video",
		keywords: []string{"video", "youtube", "tiktok"},
		reply: `Video content performs incredibly well! Here are key tips:

• Hook viewers in the first 3 seconds
• Keep videos under 60 seconds for social platforms
• Use captions (80% watch without sound)
• Include a clear call-to-action
• Maintain consistent posting schedule

For longer content: Tell stories, provide tutorials, or share behind-the-scenes content. What type of videos are you planning?`,
	},
	{
		name:     "help",
		keywords: []string{"help", "how", "what"},
		reply: `I'm here to help with your content creation! I can assist with:

✨ Content idea generation
📱 Social media strategies
📝 Blog post planning
🎥 Video content ideas
📧 Email marketing
📅 Content calendar planning

I'm powered by free AI technology, so you get real AI assistance without any costs. What would you like to work on first?`,
	},
}

const genericChatReply = `That's an interesting question about content creation! While I'm using free AI technology, I can share that successful content typically:

• Solves a specific problem for your audience
• Provides clear value or entertainment
• Uses engaging visuals and compelling headlines
• Includes a call-to-action

I can help you generate personalized content ideas using free AI. Try the 'Generate Ideas' feature to see what I can create for you!

What type of content are you most interested in creating?`

// ChatReply 返回消息命中的第一组关键词对应的固定回复，都未命中时返回通用回复。
func ChatReply(message string) string {
	reply, _ := MatchChat(message)
	return reply
}

// MatchChat 与 ChatReply 相同，额外返回命中的规则名，未命中时为 "generic"。
func MatchChat(message string) (reply, rule string) {
	lower := strings.ToLower(message)
	for _, r := range chatRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply, r.name
			}
		}
	}
	return genericChatReply, "generic"
}
