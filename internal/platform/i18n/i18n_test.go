// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
)

func TestT_DefaultsToRussian(t *testing.T) {
	assert.Equal(t, "Аноним", i18n.T(context.Background(), i18n.CommentAnonymous))
	assert.Equal(t, `Фильмы по запросу "Matrix" не найдены`, i18n.T(context.Background(), i18n.DraftNotFound, "Matrix"))
}

func TestT_UsesContextLanguage(t *testing.T) {
	ctx := ctxutil.WithLanguage(context.Background(), language.English)
	assert.Equal(t, "Anonymous", i18n.T(ctx, i18n.CommentAnonymous))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"en-US,en;q=0.9", language.English},
		{"ru-RU,ru;q=0.9,en;q=0.8", language.Russian},
		{"", language.Russian},
		{"%%%", language.Russian},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.Match(tt.header, language.Russian))
		})
	}
}

func TestParseTag(t *testing.T) {
	tag, ok := i18n.ParseTag("en")
	assert.True(t, ok)
	assert.Equal(t, language.English, tag)

	_, ok = i18n.ParseTag("")
	assert.False(t, ok)
}
