package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		first  string
		last   string
		full   string
		format NameFormat
	}{
		{"comma format", "Smith, John", "John", "Smith", "John Smith", FormatComma},
		{"comma with extra segment", "Smith, John, Jr", "John", "Smith", "John Smith", FormatComma},
		{"dash format", "John Smith - intake 2024", "John", "Smith", "John Smith", FormatDash},
		{"plain two tokens", "John Smith", "John", "Smith", "John Smith", FormatPlain},
		{"plain with middle name", "John Michael Smith", "John", "Michael Smith", "John Michael Smith", FormatPlain},
		{"single token", "Johnson", "Johnson", "", "Johnson", FormatPlain},
		{"role prefix stripped", "Member John Smith", "John", "Smith", "John Smith", FormatPlain},
		{"prefix before comma format", "client Smith, Jane", "Jane", "Smith", "Jane Smith", FormatComma},
		{"suffix stripped", "Jane Doe folder", "Jane", "Doe", "Jane Doe", FormatPlain},
		{"pluralized suffix stripped", "Jane Doe Documents", "Jane", "Doe", "Jane Doe", FormatPlain},
		{"files suffix stripped", "Doe, Jane files", "Jane", "Doe", "Jane Doe", FormatComma},
		{"prefix requires word boundary", "Casey Jones", "Casey", "Jones", "Casey Jones", FormatPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Parse(tt.raw)
			assert.Equal(t, tt.first, parsed.First)
			assert.Equal(t, tt.last, parsed.Last)
			assert.Equal(t, tt.full, parsed.Full)
			assert.Equal(t, tt.format, parsed.Format)
			assert.False(t, parsed.HasID)
		})
	}
}

func TestParseEmbeddedID(t *testing.T) {
	t.Run("id with annotation", func(t *testing.T) {
		parsed := Parse("ClientID: 4521 - Random Label")
		assert.True(t, parsed.HasID)
		assert.Equal(t, "4521", parsed.ID)
		assert.Empty(t, parsed.Full)
	})

	t.Run("id after name", func(t *testing.T) {
		parsed := Parse("Jane Doe ClientID: 77")
		assert.True(t, parsed.HasID)
		assert.Equal(t, "77", parsed.ID)
		assert.Equal(t, "Jane", parsed.First)
		assert.Equal(t, "Doe", parsed.Last)
		assert.Equal(t, "Jane Doe", parsed.Full)
	})

	t.Run("case insensitive", func(t *testing.T) {
		parsed := Parse("clientid:123 Smith, John")
		assert.True(t, parsed.HasID)
		assert.Equal(t, "123", parsed.ID)
	})

	t.Run("clientid prefix is not stripped as role prefix", func(t *testing.T) {
		// "Client" alone is a role prefix, but "ClientID:" must survive
		// prefix stripping so the identifier can be captured.
		parsed := Parse("ClientID: 9 docs")
		assert.True(t, parsed.HasID)
		assert.Equal(t, "9", parsed.ID)
	})

	t.Run("no digits means no id", func(t *testing.T) {
		parsed := Parse("ClientID: pending")
		assert.False(t, parsed.HasID)
		assert.Empty(t, parsed.ID)
	})
}

func TestParseDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "folder", "member files"} {
		parsed := Parse(raw)
		assert.Empty(t, parsed.First, "raw=%q", raw)
		assert.Empty(t, parsed.Last, "raw=%q", raw)
		assert.Empty(t, parsed.Full, "raw=%q", raw)
		assert.False(t, parsed.HasID, "raw=%q", raw)
	}
}
