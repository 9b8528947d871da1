package opentdb

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestCategoryQueryValue(t *testing.T) {
	for id := 9; id <= 32; id++ {
		c, err := CategoryFromID(id)
		require.NoError(t, err)

		v, ok := c.queryValue()
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(id), v)
		assert.Equal(t, id, c.ID())
	}

	_, ok := CategoryAny.queryValue()
	assert.False(t, ok)
}

func TestCategoryFromID(t *testing.T) {
	c, err := CategoryFromID(0)
	require.NoError(t, err)
	assert.Equal(t, CategoryAny, c)

	for _, id := range []int{-1, 1, 8, 33, 100} {
		_, err := CategoryFromID(id)
		assert.Error(t, err, "id %d", id)
	}
}

func TestCategories(t *testing.T) {
	all := Categories()
	require.Len(t, all, 24)
	assert.Equal(t, CategoryGeneralKnowledge, all[0])
	assert.Equal(t, CategoryCartoonAndAnimations, all[len(all)-1])
	for _, c := range all {
		assert.True(t, c.IsValid())
	}
}

func TestParseCategoryRoundTrip(t *testing.T) {
	for _, c := range append([]Category{CategoryAny}, Categories()...) {
		t.Run(c.String(), func(t *testing.T) {
			got, err := ParseCategoryBase64(b64(c.String()))
			require.NoError(t, err)
			assert.Equal(t, c, got)
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name     string
		expected Category
	}{
		{"Entertainment: Video Games", CategoryVideoGames},
		{"Science & Nature", CategoryScienceAndNature},
		{"Entertainment: Musicals & Theatres", CategoryMusicalsAndTheatres},
		{"Science: Computers", CategoryComputers},
		{"General Knowledge", CategoryGeneralKnowledge},
		{"VideoGames", CategoryVideoGames},
		{"Underwater Basket Weaving", CategoryAny},
		{"", CategoryAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCategory(tt.name))
		})
	}
}

func TestParseCategoryBase64Invalid(t *testing.T) {
	_, err := ParseCategoryBase64("not base64!")
	assert.Error(t, err)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Entertainment: Video Games", CategoryVideoGames.String())
	assert.Equal(t, "Category(99)", Category(99).String())
}

func TestCategoryUnmarshalJSON(t *testing.T) {
	var c Category
	require.NoError(t, json.Unmarshal([]byte(`27`), &c))
	assert.Equal(t, CategoryAnimals, c)

	require.NoError(t, json.Unmarshal([]byte(`"9"`), &c))
	assert.Equal(t, CategoryGeneralKnowledge, c)

	assert.Error(t, json.Unmarshal([]byte(`33`), &c))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &c))
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		wire     string
		expected Difficulty
	}{
		{"easy", DifficultyEasy},
		{"medium", DifficultyMedium},
		{"hard", DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			got, err := ParseDifficultyBase64(b64(tt.wire))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			v, ok := got.queryValue()
			assert.True(t, ok)
			assert.Equal(t, tt.wire, v)
		})
	}

	_, ok := DifficultyAny.queryValue()
	assert.False(t, ok)

	_, err := ParseDifficulty("impossible")
	assert.Error(t, err)
	_, err = ParseDifficulty("any")
	assert.Error(t, err)
	_, err = ParseDifficultyBase64("%%%")
	assert.Error(t, err)
}

func TestKind(t *testing.T) {
	k, err := ParseKindBase64(b64("boolean"))
	require.NoError(t, err)
	assert.Equal(t, KindTrueOrFalse, k)

	k, err = ParseKindBase64(b64("multiple"))
	require.NoError(t, err)
	assert.Equal(t, KindMultipleChoice, k)

	v, ok := KindMultipleChoice.queryValue()
	assert.True(t, ok)
	assert.Equal(t, "multiple", v)

	_, ok = KindAny.queryValue()
	assert.False(t, ok)

	_, err = ParseKind("essay")
	assert.Error(t, err)
}

func TestResponseCode(t *testing.T) {
	for n := 0; n <= 4; n++ {
		var rc ResponseCode
		require.NoError(t, json.Unmarshal([]byte(strconv.Itoa(n)), &rc))
		assert.Equal(t, ResponseCode(n), rc)
	}

	var rc ResponseCode
	err := json.Unmarshal([]byte(`5`), &rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5")

	assert.Error(t, json.Unmarshal([]byte(`-1`), &rc))
	assert.Error(t, json.Unmarshal([]byte(`"0"`), &rc))

	assert.True(t, ResponseTokenEmpty.IsTokenError())
	assert.True(t, ResponseTokenNotFound.IsTokenError())
	assert.False(t, ResponseNoResults.IsTokenError())
	assert.Equal(t, "TOKEN_EMPTY", ResponseTokenEmpty.String())
}
