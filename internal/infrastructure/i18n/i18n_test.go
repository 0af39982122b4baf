package i18n

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.Vietnamese},
		{"en-US,en;q=0.9", language.English},
		{"vi-VN", language.Vietnamese},
		{"fr-FR", language.Vietnamese},
		{"fr;q=0.9, en;q=0.8", language.English},
		{";;;", language.Vietnamese},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header, language.Vietnamese))
		})
	}
}

func TestTranslate(t *testing.T) {
	vi := New(language.Vietnamese)
	en := New(language.English)

	assert.Equal(t, "Đã giao", vi.T("stage.delivered"))
	assert.Equal(t, "Delivered", en.T("stage.delivered"))
	assert.Equal(t, "unknown.key", en.T("unknown.key"))
	assert.Equal(t, "3 orders, total 10", en.T("overview.summary", "3", "10"))
}

func TestErrorFallsBackToMessage(t *testing.T) {
	en := New(language.English)
	assert.Equal(t, "Not found", en.Error("NOT_FOUND", "Resource not found"))
	assert.Equal(t, "Document is locked", en.Error("UPSTREAM_ERROR", "Document is locked"))
}

func TestAmountFormatting(t *testing.T) {
	d := decimal.RequireFromString("1234.5")
	assert.Equal(t, "1,234.50", New(language.English).Amount(d))
	assert.Equal(t, "1.234,50", New(language.Vietnamese).Amount(d))
	assert.Equal(t, "12,000", New(language.English).Count(12000))
}

func TestContext(t *testing.T) {
	assert.Equal(t, language.Vietnamese, FromContext(context.Background()).Language())
	ctx := WithLanguage(context.Background(), language.English)
	assert.Equal(t, language.English, FromContext(ctx).Language())
}
