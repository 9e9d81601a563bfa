package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"", nil},
		{"general", []string{"general"}},
		{"appUrl", []string{"app", "Url"}},
		{"consistencyChallenges", []string{"consistency", "Challenges"}},
		{"AIProvider", []string{"AI", "Provider"}},
		{"sport_types-to import", []string{"sport", "types", "to", "import"}},
		{"ftpHistory2", []string{"ftp", "History2"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.in))
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "heartratezones", NormalizeKey("heartRateZones"))
	assert.Equal(t, "heartratezones", NormalizeKey("heart_rate-zones"))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance("zwift", "zwift"))
	assert.Equal(t, 5, Distance("", "zwift"))
	assert.Equal(t, 5, Distance("zwift", ""))
	assert.Equal(t, 2, Distance("zwfit", "zwift"))
	assert.Equal(t, 3, Distance("kitten", "sitting"))
	assert.Equal(t, Distance("sitting", "kitten"), Distance("kitten", "sitting"))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("appUrl", "app_url"), 1e-9)
	assert.InDelta(t, 0.6, Similarity("zwfit", "zwift"), 1e-9)
}

func TestClosest(t *testing.T) {
	catalog := []string{"general", "appearance", "zwift", "daemon"}

	assert.Equal(t, []string{"zwift"}, Closest("zwfit", catalog, DefaultMinSimilarity))
	assert.Equal(t, []string{"general"}, Closest("generl", catalog, DefaultMinSimilarity))
	assert.Empty(t, Closest("totallyDifferent", catalog, DefaultMinSimilarity))
}
