package fallback

import (
	"fmt"
	"math/rand/v2"
)

// Picker 从 n 个候选中选出一个下标，n 总是大于 0。
type Picker func(n int) int

// RandomPicker 使用全局随机源。
func RandomPicker(n int) int {
	return rand.IntN(n)
}

// FirstPicker 总是选第一个候选，用于需要确定输出的场景。
func FirstPicker(int) int {
	return 0
}

var contentTemplates = map[ContentType][]string{
	ContentSocial: {
		`🎯 {topic} tips that work:

• Start with small, consistent actions
• Focus on what your audience needs most
• Track progress to stay motivated
• Share your journey authentically

Which approach resonates with you? 💬

#{slug} #contentcreator #growth`,
		`Here's what I learned about {topic} 👇

The biggest mistake? Trying to be perfect from day one.

Instead:
✅ Start messy
✅ Improve iteratively
✅ Listen to feedback
✅ Stay authentic

Progress beats perfection every time.

#{slug} #mindset`,
		`Quick question about {topic} 🤔

What's the one thing you wish someone told you when you started?

Mine: Focus on solving real problems, not just creating content.

Drop your insights below 👇

#{slug} #community`,
	},
	ContentBlog: {
		`# The Complete {topic} Guide: From Beginner to Expert

## Why {topic} Matters Now

In today's fast-paced world, understanding {topic} isn't just helpful—it's essential.

## Getting Started

### 1. Foundation Building
- Master the fundamentals first
- Avoid common beginner mistakes
- Set realistic expectations

### 2. Essential Tools
- Start with free options
- Upgrade as you grow
- Focus on learning, not tools

### 3. Building Momentum
- Create a consistent routine
- Track your progress
- Celebrate small wins

## Advanced Strategies

Once you've mastered the basics, these techniques will accelerate your growth:

- Strategy 1: Focus on high-impact activities
- Strategy 2: Build systems, not just habits
- Strategy 3: Learn from others' mistakes

## Common Pitfalls to Avoid

- Trying to do everything at once
- Comparing your beginning to someone's middle
- Giving up too early

## Next Steps

Ready to take action? Start with one technique from this guide and commit to it for 30 days.

What will you try first?`,
	},
	ContentVideo: {
		`🎬 VIDEO SCRIPT: {topic} Essentials

📍 HOOK (0-5 seconds)
"If you're struggling with {topic}, this 60-second breakdown will change everything."

📍 PROBLEM (5-15 seconds)
Most people overcomplicate {topic}. Here's the simple truth...

📍 SOLUTION (15-45 seconds)
1. Start with this one thing
2. Then add this element
3. Finally, optimize this aspect

📍 CALL TO ACTION (45-60 seconds)
"Try this method and let me know your results in the comments. Follow for more {topic} tips."

🎨 VISUAL NOTES:
- Use bold text overlays for key points
- Include progress indicators
- Add engaging transitions between sections`,
	},
}

const genericContentTemplate = `Here's valuable content about {topic}:

Key insights:
• Focus on solving real problems
• Provide actionable advice
• Keep your audience engaged
• Measure and improve continuously

This approach ensures your content creates genuine value while building authentic connections with your audience.`

var platformTemplates = map[Platform]string{
	PlatformInstagram: `📸 {topic} for Instagram:

✨ Visual storytelling tips:
• Use high-quality, bright images
• Create carousel posts for step-by-step guides
• Include trending hashtags in your niche
• Post when your audience is most active
• Use Stories for behind-the-scenes content

Instagram loves authentic, visually appealing content that starts conversations!

#{slug} #instagram #contentcreator`,
	PlatformLinkedIn: `🔗 {topic} for LinkedIn:

Professional insights that drive engagement:

• Share industry-specific experiences
• Ask thought-provoking questions
• Use data to support your points
• Tag relevant professionals
• Post during business hours for maximum reach

LinkedIn rewards content that sparks meaningful professional discussions.

#{slug} #linkedin #professional`,
	PlatformTikTok: `🎵 {topic} for TikTok:

Viral content formula:
• Hook viewers in first 3 seconds
• Use trending sounds and effects
• Keep it under 60 seconds
• Add captions for accessibility
• End with a clear call-to-action

TikTok loves authentic, entertaining content that educates while it entertains!

#{slug} #tiktok #viral`,
}

const genericPlatformTemplate = `{platform}-optimized content about {topic} coming soon!`

var toneTemplates = map[Tone]string{
	ToneCasual: `Hey! Let's talk {topic} 👋

Here's the thing - everyone makes it sound super complicated, but it's actually pretty straightforward once you get the hang of it.

My take? Start small, be consistent, and don't stress about being perfect.

What's your experience been like?`,
	ToneProfessional: `{topic}: Key Insights for Success

Based on industry analysis and best practices, here are the essential elements to consider:

• Strategic planning and goal setting
• Consistent execution and monitoring
• Data-driven optimization
• Stakeholder engagement

Implementing these approaches systematically yields measurable results.`,
	ToneInspirational: `✨ Transform Your Approach to {topic}

Every expert was once a beginner. Every success story started with a single step.

Your journey with {topic} is unique, valuable, and worth pursuing. Trust the process, embrace the learning, and celebrate every milestone.

You have everything you need to succeed. Now take that first step! 🚀`,
}

const genericToneTemplate = `{tone}-toned content about {topic}`

// BaseContent 渲染内容类型对应的正文。有多个候选时由 pick 选择，
// 未知类型使用通用模板。
func BaseContent(contentType, topic string, pick Picker) string {
	candidates, ok := contentTemplates[ParseContentType(contentType)]
	tpl := genericContentTemplate
	if ok && len(candidates) > 0 {
		i := 0
		if len(candidates) > 1 {
			i = pick(len(candidates))
			if i < 0 || i >= len(candidates) {
				i = 0
			}
		}
		tpl = candidates[i]
	}
	return render(tpl, "{topic}", topic, "{slug}", Slug(topic))
}

// PlatformContent 渲染平台专属正文，未知平台使用通用模板。
func PlatformContent(platform, topic string) string {
	tpl, ok := platformTemplates[ParsePlatform(platform)]
	if !ok {
		tpl = genericPlatformTemplate
	}
	return render(tpl, "{topic}", topic, "{slug}", Slug(topic), "{platform}", platform)
}

// ToneContent 渲染指定语气的正文，未知语气使用通用模板。
func ToneContent(tone, topic string) string {
	tpl, ok := toneTemplates[ParseTone(tone)]
	if !ok {
		tpl = genericToneTemplate
	}
	return render(tpl, "{topic}", topic, "{tone}", tone)
}

// ContentIdeas 生成一条基础创意；指定平台时追加一条平台创意，指定语气时再追加一条语气创意。
// 该路径不会失败。
func ContentIdeas(req Request, pick Picker) []Idea {
	if pick == nil {
		pick = RandomPicker
	}
	slug := Slug(req.Topic)

	platformTag := req.Platform
	if platformTag == "" {
		platformTag = "general"
	}
	ideas := []Idea{{
		Title:       fmt.Sprintf("%s - Engaging %s Content", req.Topic, req.ContentType),
		Description: fmt.Sprintf("Smart AI-generated %s content designed to engage your audience", req.ContentType),
		Content:     BaseContent(req.ContentType, req.Topic, pick),
		Tags:        []string{slug, req.ContentType, platformTag, "engagement"},
	}}

	if req.Platform != "" {
		ideas = append(ideas, Idea{
			Title:       fmt.Sprintf("%s - Optimized for %s", req.Topic, req.Platform),
			Description: fmt.Sprintf("Platform-specific content strategy for %s on %s", req.Topic, req.Platform),
			Content:     PlatformContent(req.Platform, req.Topic),
			Tags:        []string{slug, req.Platform, "optimized", "strategy"},
		})
	}

	if req.Tone != "" {
		ideas = append(ideas, Idea{
			Title:       fmt.Sprintf("%s - %s Approach", req.Topic, req.Tone),
			Description: fmt.Sprintf("Content tailored with a %s tone for your %s audience", req.Tone, req.Topic),
			Content:     ToneContent(req.Tone, req.Topic),
			Tags:        []string{slug, req.Tone, "tone-specific", "targeted"},
		})
	}
	return ideas
}
