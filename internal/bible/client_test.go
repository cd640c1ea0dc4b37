package bible

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracechain/versebot/internal/models"
)

func TestGetVerseEnglish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/John 3:16", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("translation"))
		w.Write([]byte(`{"reference":"John 3:16","text":"For God so loved the world...\n"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	vt, err := c.GetVerse(context.Background(), models.MustParseReference("John 3:16"), LangEnglish)
	require.NoError(t, err)

	assert.Equal(t, "For God so loved the world...", vt.Text, "text is trimmed")
	assert.Equal(t, "John 3:16", vt.Reference)
	assert.Equal(t, LangEnglish, vt.LanguageCode)
}

func TestGetVerseChineseUsesTranslationParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cuv", r.URL.Query().Get("translation"))
		w.Write([]byte(`{"reference":"John 3:16","text":"神爱世人"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	vt, err := c.GetVerse(context.Background(), models.MustParseReference("John 3:16"), LangChinese)
	require.NoError(t, err)

	assert.Equal(t, "神爱世人", vt.Text)
	assert.Equal(t, "约翰福音 3:16", vt.Reference, "Chinese replies carry the localized book name")
}

func TestGetVerseNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.GetVerse(context.Background(), models.MustParseReference("Hezekiah 1:1"), LangEnglish)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestGetVerseChineseFallsBackToLocalCorpus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "translation unavailable", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	vt, err := c.GetVerse(context.Background(), models.MustParseReference("John 3:16"), LangChinese)
	require.NoError(t, err)

	assert.Contains(t, vt.Text, "神爱世人")
	assert.Equal(t, "约翰福音 3:16", vt.Reference)
}

func TestGetVerseEmptyReference(t *testing.T) {
	c := NewClient()
	_, err := c.GetVerse(context.Background(), models.VerseReference{}, LangEnglish)
	assert.Error(t, err)
}

func TestChineseReference(t *testing.T) {
	assert.Equal(t, "诗篇 23:1", ChineseReference(models.MustParseReference("Psalms 23:1")))
	assert.Equal(t, "罗马书 5:3-4", ChineseReference(models.MustParseReference("Romans 5:3-4")))

	// Unknown books keep their English name rather than dropping the verse.
	assert.Equal(t, "Hezekiah 1:1", ChineseReference(models.MustParseReference("Hezekiah 1:1")))
}
