// Package fallback 实现不依赖外部模型的内容生成与聊天回复。
// 所有模板以 {topic}、{slug} 等占位符书写，渲染时原样替换。
package fallback

import "strings"

// ContentType 是内容类型的封闭枚举。
type ContentType string

const (
	ContentSocial  ContentType = "social"
	ContentBlog    ContentType = "blog"
	ContentVideo   ContentType = "video"
	ContentEmail   ContentType = "email"
	ContentPodcast ContentType = "podcast"
	// ContentOther 覆盖所有无法识别的类型。
	ContentOther ContentType = "other"
)

// ParseContentType 将任意字符串映射到 ContentType，未知值返回 ContentOther。
func ParseContentType(s string) ContentType {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentSocial:
		return ContentSocial
	case ContentBlog:
		return ContentBlog
	case ContentVideo:
		return ContentVideo
	case ContentEmail:
		return ContentEmail
	case ContentPodcast:
		return ContentPodcast
	default:
		return ContentOther
	}
}

// Platform 是发布平台的封闭枚举。
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformOther     Platform = "other"
)

// ParsePlatform 将任意字符串映射到 Platform，未知值返回 PlatformOther。
func ParsePlatform(s string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformInstagram:
		return PlatformInstagram
	case PlatformLinkedIn:
		return PlatformLinkedIn
	case PlatformTikTok:
		return PlatformTikTok
	default:
		return PlatformOther
	}
}

// Tone 是语气的封闭枚举。
type Tone string

const (
	ToneCasual        Tone = "casual"
	ToneProfessional  Tone = "professional"
	ToneInspirational Tone = "inspirational"
	ToneOther         Tone = "other"
)

// ParseTone 将任意字符串映射到 Tone，未知值返回 ToneOther。
func ParseTone(s string) Tone {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case ToneCasual:
		return ToneCasual
	case ToneProfessional:
		return ToneProfessional
	case ToneInspirational:
		return ToneInspirational
	default:
		return ToneOther
	}
}

// Request 是模板生成的输入，Topic 和 ContentType 已在上层校验。
type Request struct {
	Topic       string
	ContentType string
	Platform    string
	Tone        string
}

// Idea 是一条尚未持久化的生成结果。
type Idea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

// Slug 去掉 topic 中所有空白并转为小写，用作话题标签。
func Slug(topic string) string {
	return strings.ToLower(strings.Join(strings.Fields(topic), ""))
}

func render(tpl string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(tpl)
}
