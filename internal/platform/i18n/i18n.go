// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package i18n renders user-facing notification and error text.
//
// Messages are registered per language in the golang.org/x/text message
// catalog under dotted keys. Russian is the default language; English is
// the only other supported one.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
)

var (
	supported = []language.Tag{language.Russian, language.English}
	matcher   = language.NewMatcher(supported)
)

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return language.Russian
}

// SupportedTags returns the list of supported language tags.
func SupportedTags() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// ParseTag resolves a raw language value to a supported tag.
func ParseTag(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Und, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[index], true
}

// Match picks the best supported tag for an Accept-Language header value,
// falling back to fallback when nothing matches.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supported[index]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// T renders key in the language carried by ctx, or the default language.
func T(ctx context.Context, key string, args ...any) string {
	tag, ok := ctxutil.GetLanguage(ctx)
	if !ok {
		tag = DefaultTag()
	}
	return Printer(tag).Sprintf(key, args...)
}
