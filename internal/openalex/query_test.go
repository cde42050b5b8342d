package openalex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterString(t *testing.T) {
	f := NewFilter().
		Add(FilterWorkInstitution, "I1", " ", "I2").
		Add(FilterType, "article")
	assert.Equal(t, "authorships.institutions.id:I1|I2,type:article", f.String())

	c := f.Clone().Add(FilterPublicationYear, "2024")
	assert.Equal(t, "authorships.institutions.id:I1|I2,type:article", f.String(), "clone must not alias")
	assert.Equal(t, "authorships.institutions.id:I1|I2,type:article,publication_year:2024", c.String())

	var nilFilter *Filter
	assert.Equal(t, "", nilFilter.String())
	assert.Equal(t, "", NewFilter().Add("type").String())
}

func TestQueryURL(t *testing.T) {
	q := Query{
		Entity:  EntityWorks,
		Filter:  NewFilter().Add(FilterWorkInstitution, "I1", "I2").Add(FilterType, "article"),
		GroupBy: FilterPublicationYear,
	}
	assert.Equal(t,
		"https://api.openalex.org/works?filter=authorships.institutions.id:I1|I2,type:article&group_by=publication_year&mailto=ops%40example.org",
		q.URL("https://api.openalex.org/", "ops@example.org"))

	assert.Equal(t, "https://api.openalex.org/institutions", Query{Entity: EntityInstitutions}.URL("https://api.openalex.org", ""))

	v := Query{Entity: EntityAuthors, Search: "curie", PerPage: 5, Page: 2}.Values("")
	assert.Equal(t, "curie", v.Get("search"))
	assert.Equal(t, "5", v.Get("per-page"))
	assert.Equal(t, "2", v.Get("page"))
	assert.False(t, v.Has("mailto"))
}

func TestNormalizeInstitutionID(t *testing.T) {
	valid := map[string]string{
		"I123":                                       "I123",
		"i42":                                        "I42",
		" https://openalex.org/I123 ":                "I123",
		"http://openalex.org/I7":                     "I7",
		"https://api.openalex.org/institutions/I999": "I999",
	}
	for in, want := range valid {
		got, err := NormalizeInstitutionID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "A123", "I12x", "https://example.org/I1", "123"} {
		_, err := NormalizeInstitutionID(in)
		assert.ErrorIs(t, err, ErrInvalidInstitutionID, in)
	}
}

func TestNormalizeInstitutionIDs(t *testing.T) {
	ids, err := NormalizeInstitutionIDs([]string{"I1", "https://openalex.org/I1", "", "i2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"I1", "I2"}, ids)

	_, err = NormalizeInstitutionIDs(nil)
	assert.ErrorIs(t, err, ErrNoInstitutions)
	_, err = NormalizeInstitutionIDs([]string{" ", ""})
	assert.ErrorIs(t, err, ErrNoInstitutions)
	_, err = NormalizeInstitutionIDs([]string{"I1", "bogus"})
	assert.ErrorIs(t, err, ErrInvalidInstitutionID)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"I1", "I2", "I3"}, SplitIDs("I1, I2\nI3,"))
	assert.Empty(t, SplitIDs(" , "))
}
