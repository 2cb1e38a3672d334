package goalstore

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareText(t *testing.T) {
	req, err := Draft{Title: "毎日走る", Deadline: "2026-06-30", Category: "健康・フィットネス"}.Compose(composeToday())
	require.NoError(t, err)

	assert.Equal(t,
		"私の新しい目標: 毎日走る\n\nカテゴリー: 健康・フィットネス\n達成期限: 2026-06-30\n\n#Taigen #目標達成",
		ShareText(req))
}

func TestShareLinks(t *testing.T) {
	req, err := Draft{Title: "Read 20 books", Deadline: "2026-12-31", Category: "趣味・特技"}.Compose(composeToday())
	require.NoError(t, err)

	links := ShareLinks(req, "https://taigen.example.com")
	require.Len(t, links, 3)

	byNetwork := map[string]string{}
	for _, l := range links {
		byNetwork[l.Network] = l.URL
	}

	tw, err := url.Parse(byNetwork["twitter"])
	require.NoError(t, err)
	assert.Equal(t, "twitter.com", tw.Host)
	assert.Equal(t, ShareText(req), tw.Query().Get("text"))
	assert.Equal(t, "https://taigen.example.com", tw.Query().Get("url"))

	fb, err := url.Parse(byNetwork["facebook"])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(byNetwork["facebook"], "https://www.facebook.com/sharer/sharer.php?"))
	assert.Equal(t, "https://taigen.example.com", fb.Query().Get("u"))
	assert.Equal(t, ShareText(req), fb.Query().Get("quote"))

	li, err := url.Parse(byNetwork["linkedin"])
	require.NoError(t, err)
	assert.Equal(t, "/sharing/share-offsite/", li.Path)
	assert.Equal(t, ShareText(req), li.Query().Get("summary"))
}
