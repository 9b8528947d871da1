package opentdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Category represents an OpenTDB question category. The value is the API id.
type Category int

const (
	// CategoryAny leaves the category unfiltered
	CategoryAny                  Category = 0
	CategoryGeneralKnowledge     Category = 9
	CategoryBooks                Category = 10
	CategoryFilm                 Category = 11
	CategoryMusic                Category = 12
	CategoryMusicalsAndTheatres  Category = 13
	CategoryTelevision           Category = 14
	CategoryVideoGames           Category = 15
	CategoryBoardGames           Category = 16
	CategoryScienceAndNature     Category = 17
	CategoryComputers            Category = 18
	CategoryMathematics          Category = 19
	CategoryMythology            Category = 20
	CategorySports               Category = 21
	CategoryGeography            Category = 22
	CategoryHistory              Category = 23
	CategoryPolitics             Category = 24
	CategoryArt                  Category = 25
	CategoryCelebrities          Category = 26
	CategoryAnimals              Category = 27
	CategoryVehicles             Category = 28
	CategoryComics               Category = 29
	CategoryGadgets              Category = 30
	CategoryAnimeAndManga        Category = 31
	CategoryCartoonAndAnimations Category = 32
)

const (
	minCategoryID = int(CategoryGeneralKnowledge)
	maxCategoryID = int(CategoryCartoonAndAnimations)
)

var categoryNames = map[Category]string{
	CategoryAny:                  "Any Category",
	CategoryGeneralKnowledge:     "General Knowledge",
	CategoryBooks:                "Entertainment: Books",
	CategoryFilm:                 "Entertainment: Film",
	CategoryMusic:                "Entertainment: Music",
	CategoryMusicalsAndTheatres:  "Entertainment: Musicals & Theatres",
	CategoryTelevision:           "Entertainment: Television",
	CategoryVideoGames:           "Entertainment: Video Games",
	CategoryBoardGames:           "Entertainment: Board Games",
	CategoryScienceAndNature:     "Science & Nature",
	CategoryComputers:            "Science: Computers",
	CategoryMathematics:          "Science: Mathematics",
	CategoryMythology:            "Mythology",
	CategorySports:               "Sports",
	CategoryGeography:            "Geography",
	CategoryHistory:              "History",
	CategoryPolitics:             "Politics",
	CategoryArt:                  "Art",
	CategoryCelebrities:          "Celebrities",
	CategoryAnimals:              "Animals",
	CategoryVehicles:             "Vehicles",
	CategoryComics:               "Entertainment: Comics",
	CategoryGadgets:              "Science: Gadgets",
	CategoryAnimeAndManga:        "Entertainment: Japanese Anime & Manga",
	CategoryCartoonAndAnimations: "Entertainment: Cartoon & Animations",
}

// categoryByKey maps normalized display names back to categories
var categoryByKey = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		if c == CategoryAny {
			continue
		}
		m[normalizeCategoryName(name)] = c
	}
	return m
}()

// String returns the display name used by the API
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ID returns the numeric API id
func (c Category) ID() int {
	return int(c)
}

// IsValid checks if the category is one of the known values
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

// queryValue returns the category query parameter, or false for CategoryAny
func (c Category) queryValue() (string, bool) {
	if c == CategoryAny {
		return "", false
	}
	return strconv.Itoa(int(c)), true
}

// Categories returns every concrete category in id order
func Categories() []Category {
	out := make([]Category, 0, maxCategoryID-minCategoryID+1)
	for id := minCategoryID; id <= maxCategoryID; id++ {
		out = append(out, Category(id))
	}
	return out
}

// CategoryFromID converts an API id into a Category. 0 maps to CategoryAny.
func CategoryFromID(id int) (Category, error) {
	c := Category(id)
	if !c.IsValid() {
		return CategoryAny, fmt.Errorf("unknown category id %d", id)
	}
	return c, nil
}

// statsCategory is CategoryFromID restricted to concrete categories
func statsCategory(id int) (Category, error) {
	if id < minCategoryID || id > maxCategoryID {
		return CategoryAny, fmt.Errorf("category id %d out of range %d-%d", id, minCategoryID, maxCategoryID)
	}
	return Category(id), nil
}

// ParseCategory matches a display name such as "Entertainment: Video Games"
// or "Science & Nature". Unknown names yield CategoryAny.
func ParseCategory(name string) Category {
	if c, ok := categoryByKey[normalizeCategoryName(name)]; ok {
		return c
	}
	return CategoryAny
}

// ParseCategoryBase64 decodes a base64 display name and matches it
func ParseCategoryBase64(s string) (Category, error) {
	name, err := decodeBase64(s)
	if err != nil {
		return CategoryAny, err
	}
	return ParseCategory(name), nil
}

// normalizeCategoryName turns "Entertainment: Musicals & Theatres" into
// "MusicalsAndTheatres".
func normalizeCategoryName(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, " ", "")
	return strings.ReplaceAll(name, "&", "And")
}

// UnmarshalJSON accepts a category id as a JSON number or numeric string.
// Only concrete categories (9-32) are accepted.
func (c *Category) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	id, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid category id %s: %w", data, err)
	}
	parsed, err := statsCategory(id)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON writes the category id
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

// Difficulty represents the question difficulty
type Difficulty int

const (
	// DifficultyAny leaves the difficulty unfiltered
	DifficultyAny Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// String returns the wire representation
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "any"
	}
}

func (d Difficulty) queryValue() (string, bool) {
	if d == DifficultyAny {
		return "", false
	}
	return d.String(), true
}

// ParseDifficulty converts a wire string into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyAny, fmt.Errorf("unknown difficulty %q", s)
}

// ParseDifficultyBase64 decodes a base64 wire string into a Difficulty
func ParseDifficultyBase64(s string) (Difficulty, error) {
	v, err := decodeBase64(s)
	if err != nil {
		return DifficultyAny, err
	}
	return ParseDifficulty(v)
}

// MarshalText writes the wire representation
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Kind represents the question type
type Kind int

const (
	// KindAny leaves the question type unfiltered
	KindAny Kind = iota
	KindTrueOrFalse
	KindMultipleChoice
)

// String returns the wire representation
func (k Kind) String() string {
	switch k {
	case KindTrueOrFalse:
		return "boolean"
	case KindMultipleChoice:
		return "multiple"
	default:
		return "any"
	}
}

func (k Kind) queryValue() (string, bool) {
	if k == KindAny {
		return "", false
	}
	return k.String(), true
}

// ParseKind converts a wire string into a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "boolean":
		return KindTrueOrFalse, nil
	case "multiple":
		return KindMultipleChoice, nil
	}
	return KindAny, fmt.Errorf("unknown question type %q", s)
}

// ParseKindBase64 decodes a base64 wire string into a Kind
func ParseKindBase64(s string) (Kind, error) {
	v, err := decodeBase64(s)
	if err != nil {
		return KindAny, err
	}
	return ParseKind(v)
}

// MarshalText writes the wire representation
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ResponseCode is the application level outcome embedded in 200 responses
type ResponseCode int

const (
	ResponseSuccess ResponseCode = iota
	ResponseNoResults
	ResponseInvalidParameter
	ResponseTokenNotFound
	ResponseTokenEmpty
)

// String returns the string representation of a ResponseCode
func (rc ResponseCode) String() string {
	switch rc {
	case ResponseSuccess:
		return "SUCCESS"
	case ResponseNoResults:
		return "NO_RESULTS"
	case ResponseInvalidParameter:
		return "INVALID_PARAMETER"
	case ResponseTokenNotFound:
		return "TOKEN_NOT_FOUND"
	case ResponseTokenEmpty:
		return "TOKEN_EMPTY"
	default:
		return fmt.Sprintf("ResponseCode(%d)", int(rc))
	}
}

// IsTokenError checks if the token must be regenerated or reset
func (rc ResponseCode) IsTokenError() bool {
	return rc == ResponseTokenNotFound || rc == ResponseTokenEmpty
}

// UnmarshalJSON accepts only the codes 0 through 4
func (rc *ResponseCode) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid response code %s: %w", data, err)
	}
	if n < int64(ResponseSuccess) || n > int64(ResponseTokenEmpty) {
		return fmt.Errorf("invalid response code %d: expected a number between 0 and 4", n)
	}
	*rc = ResponseCode(n)
	return nil
}
