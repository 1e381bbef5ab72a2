// Package textutil 提供评论正文的纯文本处理
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// 这些标签的边界视为空白，避免相邻段落的词粘在一起
var blockTags = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true, "dd": true,
	"div": true, "dl": true, "dt": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "hr": true, "li": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// 内容整体丢弃的标签
var rawTextTags = map[string]bool{
	"script": true, "style": true,
}

// StripTags 去掉 HTML 标签并解码实体，只保留文本
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skipDepth := 0

	separate := func() {
		if b.Len() == 0 {
			return
		}
		last, _ := utf8.DecodeLastRuneInString(b.String())
		if !unicode.IsSpace(last) {
			b.WriteByte(' ')
		}
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			// 自闭合的 <script/> 没有结束标签，不进入跳过状态
			if rawTextTags[tag] && tt == html.StartTagToken {
				skipDepth++
			}
			if blockTags[tag] {
				separate()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if rawTextTags[tag] && skipDepth > 0 {
				skipDepth--
			}
			if blockTags[tag] {
				separate()
			}
		}
	}
}

// CountWords 统计单词数
// 单词是以字母开头的连续字母序列，中间可以包含撇号和连字符；数字和标点都是分隔符
func CountWords(s string) int {
	count := 0
	inWord := false

	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			if !inWord {
				count++
				inWord = true
			}
		case inWord && (r == '\'' || r == '-' || r == '’' || unicode.Is(unicode.Mn, r)):
		default:
			inWord = false
		}
	}

	return count
}
