package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const staticTestHTML = `
<html><body>
  <button class="toggle">Show all</button>
  <div class="content">hello</div>
</body></html>
`

func TestStaticPageWaitReady(t *testing.T) {
	p := MustStaticPage(staticTestHTML)

	assert.NoError(t, p.WaitReady(".content", time.Second))
	assert.Error(t, p.WaitReady(".missing", time.Second))
}

func TestStaticPageClickIfPresent(t *testing.T) {
	p := MustStaticPage(staticTestHTML)

	clicked, err := p.ClickIfPresent(".toggle")
	assert.NoError(t, err)
	assert.True(t, clicked)

	clicked, err = p.ClickIfPresent(".missing")
	assert.NoError(t, err)
	assert.False(t, clicked)

	assert.Equal(t, []string{".toggle"}, p.Clicked)
}

func TestStaticPageDocument(t *testing.T) {
	p := MustStaticPage(staticTestHTML)

	doc, err := p.Document()
	assert.NoError(t, err)
	assert.Equal(t, "hello", doc.Find(".content").Text())
}
