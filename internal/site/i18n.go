package site

import "fmt"

type Lang string

const (
	LangEN Lang = "en"
	LangZH Lang = "zh"
)

var Langs = []Lang{LangEN, LangZH}

func ParseLang(s string) (Lang, error) {
	for _, l := range Langs {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
}

// Next toggles between the supported languages.
func (l Lang) Next() Lang {
	if l == LangEN {
		return LangZH
	}
	return LangEN
}

var translations = map[Lang]map[string]string{
	LangEN: {
		"nav.home":     "Home",
		"nav.about":    "About",
		"nav.projects": "Projects",
		"nav.blog":     "Blog",
		"nav.media":    "Photos",
		"nav.movies":   "Movies",
		"nav.links":    "Links",
		"nav.contact":  "Contact",

		"theme.light": "Light",
		"theme.dark":  "Dark",
		"theme.auto":  "Auto",

		"lang.en": "EN",
		"lang.zh": "中文",

		"section.hero":     "Hi, welcome to my corner of the web.",
		"section.about":    "A little about who I am and what I build.",
		"section.projects": "Things I have shipped and tinkered with.",
		"section.blog":     "Notes and long-form writing.",
		"section.media":    "Photos from the road.",
		"section.movies":   "Films worth a second watch.",
		"section.links":    "Find me elsewhere.",
		"section.contact":  "Say hello.",

		"status.help":   "Click a section, Space: theme, L: load layout, Esc/Q: quit",
		"status.layout": "Layout loaded",
	},
	LangZH: {
		"nav.home":     "首页",
		"nav.about":    "关于",
		"nav.projects": "项目",
		"nav.blog":     "博客",
		"nav.media":    "照片",
		"nav.movies":   "电影",
		"nav.links":    "链接",
		"nav.contact":  "联系",

		"theme.light": "浅色",
		"theme.dark":  "深色",
		"theme.auto":  "自动",

		"section.hero":     "你好，欢迎来到我的小站。",
		"section.about":    "关于我，以及我在做的东西。",
		"section.projects": "做过和折腾过的项目。",
		"section.blog":     "随笔与长文。",
		"section.media":    "旅途中的照片。",
		"section.movies":   "值得再看一遍的电影。",
		"section.links":    "在别处找到我。",
		"section.contact":  "打个招呼。",
	},
}

// T looks key up in lang, then in English, then returns the key itself.
func T(lang Lang, key string) string {
	if s, ok := translations[lang][key]; ok {
		return s
	}
	if s, ok := translations[LangEN][key]; ok {
		return s
	}
	return key
}
